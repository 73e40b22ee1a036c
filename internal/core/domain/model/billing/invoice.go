package billing

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice was not created
	// through NewInvoice or RestoreInvoice.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

	// ErrPayerIsRequired is returned when an invoice has neither a client
	// reference nor a manual payer name.
	ErrPayerIsRequired = errors.New("invoice requires a client or a manual payer name")

	// ErrNoLineItems is returned when an invoice is created without line items.
	ErrNoLineItems = errors.New("invoice requires at least one line item")
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus int

const (
	// InvoiceStatusUnknown represents an invalid or undefined status.
	InvoiceStatusUnknown InvoiceStatus = iota

	// InvoicePending is the initial status: issued, awaiting payment.
	InvoicePending

	// InvoiceVerified indicates a registered, verified payment.
	InvoiceVerified

	// InvoiceVoided indicates the invoice was cancelled.
	InvoiceVoided

	// InvoiceReturned indicates the payment was reversed.
	InvoiceReturned
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		InvoiceStatusUnknown: "unknown",
		InvoicePending:       "pending",
		InvoiceVerified:      "verified",
		InvoiceVoided:        "voided",
		InvoiceReturned:      "returned",
	}
}

// Validate checks if the InvoiceStatus is one of the defined states.
func (s InvoiceStatus) Validate() error {
	if s == InvoiceStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
	if _, ok := getInvoiceStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// LineItem is one billed position on an invoice. It is an immutable value
// object; its subtotal is always quantity x unit price.
type LineItem struct {
	description string
	quantity    int
	unitPrice   float64
}

// NewLineItem creates a line item. Quantity must be at least 1 and the unit
// price non-negative.
func NewLineItem(description string, quantity int, unitPrice float64) (LineItem, error) {
	if description == "" {
		return LineItem{}, errs.NewValueIsRequiredError("description")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%v is negative", unitPrice))
	}
	return LineItem{description: description, quantity: quantity, unitPrice: unitPrice}, nil
}

// Description returns the billed service description.
func (li LineItem) Description() string { return li.description }

// Quantity returns the billed quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the price per unit.
func (li LineItem) UnitPrice() float64 { return li.unitPrice }

// Subtotal returns quantity x unit price.
func (li LineItem) Subtotal() float64 {
	return float64(li.quantity) * li.unitPrice
}

// Invoice is the billing aggregate root. An invoice and its line items are
// created together as one unit; afterwards only the status changes.
//
// An invoice is issued either to a registered client (clientID set) or to a
// manual payer identified by free-text name and tax ID.
type Invoice struct {
	id              kernel.UUID
	number          string
	clientID        *kernel.UUID
	payerName       string
	payerTaxID      string
	consolidationID *kernel.UUID
	lines           []LineItem
	subtotal        float64
	total           float64
	currency        string
	status          InvoiceStatus
	issuedAt        time.Time

	isConstructed bool
}

// NewInvoice creates a pending invoice with its full set of line items.
// The consolidationID is set only for batch-billed invoices. Totals are
// computed from the line items and never stored independently of them.
func NewInvoice(
	id kernel.UUID,
	number string,
	clientID *kernel.UUID,
	payerName string,
	payerTaxID string,
	consolidationID *kernel.UUID,
	lines []LineItem,
	currency string,
	issuedAt time.Time,
) (*Invoice, error) {
	inv := &Invoice{
		payerName:     payerName,
		payerTaxID:    payerTaxID,
		status:        InvoicePending,
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setNumber(number),
		inv.setPayer(clientID, payerName),
		inv.setConsolidationID(consolidationID),
		inv.setLines(lines),
		inv.setCurrency(currency),
		inv.setIssuedAt(issuedAt),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvoice reconstructs an invoice from persistence.
func RestoreInvoice(
	id kernel.UUID,
	number string,
	clientID *kernel.UUID,
	payerName string,
	payerTaxID string,
	consolidationID *kernel.UUID,
	lines []LineItem,
	currency string,
	status InvoiceStatus,
	issuedAt time.Time,
) (*Invoice, error) {
	inv, err := NewInvoice(id, number, clientID, payerName, payerTaxID, consolidationID, lines, currency, issuedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	inv.status = status
	return inv, nil
}

// Validate ensures the Invoice was created through its constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID { return i.id }

// Number returns the unique invoice number.
func (i *Invoice) Number() string { return i.number }

// Client returns the billed client's ID, or nil for manual payers.
func (i *Invoice) Client() *kernel.UUID { return i.clientID }

// PayerName returns the free-text payer name for manual payers.
func (i *Invoice) PayerName() string { return i.payerName }

// PayerTaxID returns the free-text payer tax ID for manual payers.
func (i *Invoice) PayerTaxID() string { return i.payerTaxID }

// Consolidation returns the batch-billed consolidation's ID, or nil.
func (i *Invoice) Consolidation() *kernel.UUID { return i.consolidationID }

// Lines returns a copy of the invoice's line items.
func (i *Invoice) Lines() []LineItem {
	lines := make([]LineItem, len(i.lines))
	copy(lines, i.lines)
	return lines
}

// Subtotal returns the sum of line-item subtotals.
func (i *Invoice) Subtotal() float64 { return i.subtotal }

// Total returns the invoice total. Equals the sum of line-item subtotals.
func (i *Invoice) Total() float64 { return i.total }

// Currency returns the ISO currency code of the invoice.
func (i *Invoice) Currency() string { return i.currency }

// Status returns the current invoice status.
func (i *Invoice) Status() InvoiceStatus { return i.status }

// IssuedAt returns the issue timestamp.
func (i *Invoice) IssuedAt() time.Time { return i.issuedAt }

// RegisterPayment marks a pending invoice as verified.
func (i *Invoice) RegisterPayment() error {
	if i.status != InvoicePending {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%s is not a valid status to register a payment", i.status))
	}
	i.status = InvoiceVerified
	return nil
}

// Void cancels a pending invoice.
func (i *Invoice) Void() error {
	if i.status != InvoicePending {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%s is not a valid status to void", i.status))
	}
	i.status = InvoiceVoided
	return nil
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("invoice number")
	}
	i.number = number
	return nil
}

func (i *Invoice) setPayer(clientID *kernel.UUID, payerName string) error {
	if clientID == nil {
		if payerName == "" {
			return ErrPayerIsRequired
		}
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	i.clientID = clientID
	return nil
}

func (i *Invoice) setConsolidationID(consolidationID *kernel.UUID) error {
	if consolidationID == nil {
		return nil
	}
	if err := consolidationID.Validate(); err != nil {
		return err
	}
	i.consolidationID = consolidationID
	return nil
}

func (i *Invoice) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return ErrNoLineItems
	}
	i.lines = make([]LineItem, len(lines))
	copy(i.lines, lines)

	var sum float64
	for _, li := range i.lines {
		sum += li.Subtotal()
	}
	i.subtotal = sum
	i.total = sum
	return nil
}

func (i *Invoice) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	i.currency = currency
	return nil
}

func (i *Invoice) setIssuedAt(issuedAt time.Time) error {
	if issuedAt.IsZero() {
		return errs.NewValueIsRequiredError("issuedAt")
	}
	i.issuedAt = issuedAt
	return nil
}

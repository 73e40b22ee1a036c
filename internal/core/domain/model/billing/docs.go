// Package billing contains the Invoice aggregate with its line items and the
// outbound NotificationRequest entity. Invoices are created in one unit
// together with their line items; the invariant total == sum of line-item
// subtotals holds at all times.
package billing

// Package parcel contains the Parcel aggregate: a single package moving
// through the freight-forwarding pipeline from intake to delivery.
// The package also defines the parcel lifecycle state machine and the
// append-only parcel audit event.
package parcel

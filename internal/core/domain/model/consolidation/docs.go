// Package consolidation contains the Consolidation aggregate: a master
// shipment grouping a fixed set of parcels that travel together across the
// border. The package defines the master-shipment status, the closed set of
// status labels with their two projection maps (master status and member
// parcel target), and the append-only consolidation audit event.
package consolidation

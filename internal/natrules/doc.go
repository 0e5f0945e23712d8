// Package natrules maintains the authoritative list of port-forwarding
// mappings for the WAN interface and projects it onto the host firewall's
// NAT table.
//
// The store is a flat text file, one rule per line, fields in the fixed
// order "protocol publicPort targetAddress targetPort". The store is
// written before the firewall is touched; there is no transaction between
// the two, so a failed firewall apply leaves the store ahead of the live
// table. Operations are synchronous and unlocked: two concurrent
// invocations can both pass the duplicate check before either writes.
// Both limitations are inherited from the original tooling and accepted.
package natrules

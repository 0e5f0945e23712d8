package natrules

// Controller projects rules onto the host firewall NAT table. The live
// table is scoped to one managed (WAN) interface; rules on other
// interfaces are never touched.
type Controller interface {
	// Insert adds the DNAT rule for r to the NAT table.
	Insert(r Rule) error

	// Delete removes the DNAT rule for r. Deleting an absent rule is
	// not an error.
	Delete(r Rule) error

	// Flush removes every DNAT rule on the managed interface.
	Flush() error

	// ListForwards returns the DNAT rules currently live on the
	// managed interface.
	ListForwards() ([]Rule, error)

	// Persist makes the current live NAT table the host's durable,
	// startup-time rule set.
	Persist() error
}

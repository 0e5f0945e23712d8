package natrules

import (
	"strconv"
	"strings"

	"github.com/coreos/go-iptables/iptables"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/logging"
)

const (
	natTable        = "nat"
	preroutingChain = "PREROUTING"
)

// IPTables is the subset of go-iptables operations the controller uses,
// abstracted so tests can substitute a fake.
type IPTables interface {
	AppendUnique(table, chain string, rulespec ...string) error
	Delete(table, chain string, rulespec ...string) error
	DeleteIfExists(table, chain string, rulespec ...string) error
	List(table, chain string) ([]string, error)
}

// IptablesController drives the host NAT table through iptables and
// persists it via netfilter-persistent.
type IptablesController struct {
	ipt    IPTables
	runner command.Runner
	wan    string
	log    *logging.Logger
}

// NewIptablesController connects to the host's IPv4 iptables.
func NewIptablesController(wan string, runner command.Runner) (*IptablesController, error) {
	ipt, err := iptables.New(iptables.IPFamily(iptables.ProtocolIPv4))
	if err != nil {
		return nil, &PersistenceError{Op: "iptables init", Err: err}
	}
	return newIptablesController(ipt, wan, runner), nil
}

func newIptablesController(ipt IPTables, wan string, runner command.Runner) *IptablesController {
	return &IptablesController{
		ipt:    ipt,
		runner: runner,
		wan:    wan,
		log:    logging.WithComponent("firewall"),
	}
}

// rulespec builds the iptables arguments for one DNAT rule.
func (c *IptablesController) rulespec(r Rule) []string {
	return []string{
		"-i", c.wan,
		"-p", string(r.Protocol),
		"--dport", strconv.Itoa(r.PublicPort),
		"-j", "DNAT",
		"--to-destination", r.Target(),
	}
}

func (c *IptablesController) Insert(r Rule) error {
	c.log.Debug("inserting DNAT rule", "rule", r.String())
	if err := c.ipt.AppendUnique(natTable, preroutingChain, c.rulespec(r)...); err != nil {
		return &FirewallApplyError{Op: "insert", Rule: r, Err: err}
	}
	return nil
}

func (c *IptablesController) Delete(r Rule) error {
	c.log.Debug("deleting DNAT rule", "rule", r.String())
	if err := c.ipt.DeleteIfExists(natTable, preroutingChain, c.rulespec(r)...); err != nil {
		return &FirewallApplyError{Op: "delete", Rule: r, Err: err}
	}
	return nil
}

func (c *IptablesController) Flush() error {
	specs, err := c.listSpecs()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := c.ipt.Delete(natTable, preroutingChain, spec...); err != nil {
			return &FirewallApplyError{Op: "flush", Err: err}
		}
	}
	c.log.Debug("flushed managed NAT rules", "count", len(specs))
	return nil
}

func (c *IptablesController) ListForwards() ([]Rule, error) {
	specs, err := c.listSpecs()
	if err != nil {
		return nil, err
	}

	var rules []Rule
	for _, spec := range specs {
		if r, ok := parseSpec(spec); ok {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

func (c *IptablesController) Persist() error {
	c.log.Debug("saving NAT table", "tool", "netfilter-persistent")
	if err := c.runner.Run("netfilter-persistent", "save"); err != nil {
		return &PersistenceError{Op: "netfilter-persistent save", Err: err}
	}
	return nil
}

// listSpecs returns the argument vectors of every DNAT rule bound to the
// managed interface, as echoed by iptables -S.
func (c *IptablesController) listSpecs() ([][]string, error) {
	lines, err := c.ipt.List(natTable, preroutingChain)
	if err != nil {
		return nil, &FirewallApplyError{Op: "list", Err: err}
	}

	var specs [][]string
	for _, line := range lines {
		fields := strings.Fields(line)
		// Skip the chain policy line and rules for other chains.
		if len(fields) < 3 || fields[0] != "-A" || fields[1] != preroutingChain {
			continue
		}
		spec := fields[2:]
		if !specHasPair(spec, "-i", c.wan) || !specHasPair(spec, "-j", "DNAT") {
			continue
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func specHasPair(spec []string, flag, value string) bool {
	for i := 0; i+1 < len(spec); i++ {
		if spec[i] == flag && spec[i+1] == value {
			return true
		}
	}
	return false
}

// parseSpec reconstructs a Rule from an iptables argument vector. iptables
// normalizes "-p tcp --dport" to "-p tcp -m tcp --dport", so values are
// located by flag rather than position.
func parseSpec(spec []string) (Rule, bool) {
	var r Rule
	for i := 0; i+1 < len(spec); i++ {
		switch spec[i] {
		case "-p":
			r.Protocol = Protocol(spec[i+1])
		case "--dport":
			n, err := strconv.Atoi(spec[i+1])
			if err != nil {
				return Rule{}, false
			}
			r.PublicPort = n
		case "--to-destination":
			addr, port, ok := strings.Cut(spec[i+1], ":")
			if !ok {
				return Rule{}, false
			}
			n, err := strconv.Atoi(port)
			if err != nil {
				return Rule{}, false
			}
			r.TargetAddr = addr
			r.TargetPort = n
		}
	}
	if r.Protocol == "" || r.PublicPort == 0 || r.TargetAddr == "" {
		return Rule{}, false
	}
	return r, true
}

package cmd

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"grimm.is/pvegate/internal/validation"
)

// addInput is the tuple gathered interactively for an add. Prompting is a
// thin adapter; all authoritative validation lives in the manager.
type addInput struct {
	Protocol   string
	TargetAddr string
	TargetPort int
	PublicPort int
}

// promptAdd gathers a forwarding tuple from the operator.
func promptAdd() (addInput, error) {
	var (
		addr       string
		targetPort string
		publicPort string
		protocol   string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target IP address").
				Description("Private IPv4 address of the VM").
				Placeholder("10.10.100.150").
				Validate(validation.ValidateIPv4).
				Value(&addr),
			huh.NewInput().
				Title("Target port").
				Description("Port the service listens on inside the VM").
				Placeholder("22").
				Validate(validation.ValidatePortString).
				Value(&targetPort),
			huh.NewInput().
				Title("Public port").
				Description("WAN port to forward").
				Placeholder("2201").
				Validate(validation.ValidatePortString).
				Value(&publicPort),
			huh.NewSelect[string]().
				Title("Protocol").
				Options(huh.NewOptions("tcp", "udp", "both")...).
				Value(&protocol),
		),
	)

	if err := form.Run(); err != nil {
		return addInput{}, err
	}

	tp, err := strconv.Atoi(targetPort)
	if err != nil {
		return addInput{}, err
	}
	pp, err := strconv.Atoi(publicPort)
	if err != nil {
		return addInput{}, err
	}

	return addInput{
		Protocol:   protocol,
		TargetAddr: addr,
		TargetPort: tp,
		PublicPort: pp,
	}, nil
}

// promptPublicPort asks which public port to remove.
func promptPublicPort() (int, error) {
	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Public port to remove").
				Validate(validation.ValidatePortString).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return strconv.Atoi(port)
}

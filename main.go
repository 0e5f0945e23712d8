package main

import (
	"flag"
	"fmt"
	"os"

	"grimm.is/pvegate/cmd"
	"grimm.is/pvegate/internal/brand"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	sub := os.Args[1]
	rest := os.Args[2:]

	// Every subcommand takes an optional config override.
	configFile := brand.DefaultConfigFile()
	flags := flag.NewFlagSet(sub, flag.ExitOnError)
	flags.StringVar(&configFile, "config", configFile, "Configuration file")
	flags.StringVar(&configFile, "c", configFile, "Configuration file (short)")

	run := func(f func(string) int) {
		flags.Parse(rest)
		os.Exit(f(configFile))
	}

	switch sub {
	case "add":
		run(cmd.RunAdd)
	case "remove":
		run(cmd.RunRemove)
	case "list":
		run(cmd.RunList)
	case "save":
		run(cmd.RunSave)
	case "restore":
		run(cmd.RunRestore)
	case "install":
		run(cmd.RunInstall)
	case "template":
		run(cmd.RunTemplate)
	case "fail2ban":
		run(cmd.RunFail2ban)
	case "version", "--version", "-v":
		fmt.Printf("%s %s\n", brand.BinaryName, version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", sub)
		printUsage()
		os.Exit(0)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage: %s <command> [-c config]

Port forwarding:
  add        Add a port-forwarding rule (interactive)
  remove     Remove rules for a public port (interactive)
  list       Show stored rules
  save       Persist the live NAT table across reboots
  restore    Flush and re-apply all stored rules, then save

Provisioning:
  install    Install and enable required host packages
  template   Build the cloud-init VM template
  fail2ban   Configure fail2ban jails for SSH and the web UI

Other:
  version    Print version
  help       Show this help

Config is read from %s unless -c is given.
`, brand.BinaryName, brand.Description, brand.BinaryName, brand.DefaultConfigFile())
}

// Package cli implements the juju-units command-line interface.
//
// juju-units is a juju plugin: with the binary on $PATH, `juju units` runs
// it. The root command prints one line per unit:
//
//	- wordpress/0: 10.0.0.9 (started) 80/tcp
//	  - nrpe/0:    10.0.0.9 (started)
//
// # Command Structure
//
//	juju-units                 - List units (the default action)
//	juju-units get <service>   - Show a service's charm settings
//	juju-units doctor          - Diagnose config, SSH and juju client problems
//	juju-units version         - Print version information
//	juju-units completion      - Generate shell completion scripts
//
// # Flag Handling
//
// Settings come from, in increasing precedence: built-in defaults, the
// config file (see internal/config), JUJU_UNITS_* environment variables,
// and flags given explicitly on the command line. Flags left at their
// zero value never override the config.
//
// --description is answered before any config is read or juju is run, as
// juju's plugin discovery expects.
//
// # Output
//
// Text output goes to stdout; logs and errors go to stderr. With -o json
// every response, including errors, is wrapped in a JSONEnvelope on stdout.
package cli

// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command slackmcp runs the Slack MCP proxy server.  It reads the bot and
// optionally the user token from the environment (or a .env file), verifies
// the credentials against the workspace and serves the tool catalog over
// the chosen MCP transport.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/rusq/slackmcp"
	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/apiconfig"
	"github.com/rusq/slackmcp/internal/mcp"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	transport string
	addr      string
	cfgFile   string

	logFile      string
	jsonLog      bool
	traceFile    string
	verbose      bool
	printVersion bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, p); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, p params) error {
	lg, closeLog, err := initLog(p.logFile, p.jsonLog, p.verbose)
	if err != nil {
		return err
	}
	defer closeLog()
	stopTrace := initTrace(p.traceFile)
	defer stopTrace()

	var opts []slackmcp.Option
	opts = append(opts, slackmcp.WithLogger(lg))
	if p.cfgFile != "" {
		limits, err := apiconfig.Load(p.cfgFile)
		if err != nil {
			return fmt.Errorf("error loading API limits from %q: %w", p.cfgFile, err)
		}
		opts = append(opts, slackmcp.WithLimits(limits))
	}

	creds, err := auth.FromEnv()
	if err != nil {
		return err
	}
	sess, err := slackmcp.New(ctx, creds, opts...)
	if err != nil {
		return err
	}
	lg.InfoContext(ctx, "connected", "team", sess.Info().Team, "user", sess.Info().User)

	srv := mcp.New(sess, lg)
	switch mcp.Transport(p.transport) {
	case mcp.TransportStdio:
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, p.addr)
	default:
		return fmt.Errorf("unknown transport: %q", p.transport)
	}
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("slackmcp", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			fs.Output(),
			"Slack MCP proxy, %s\n\n"+
				"Exposes Slack workspace operations as MCP tools.  Requires a bot token\n"+
				"in "+auth.EnvBotToken+"; set "+auth.EnvUserToken+" to enable message search.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.transport, "transport", osenv.Value("MCP_TRANSPORT", string(mcp.TransportStdio)), "MCP `transport`: \"stdio\" or \"http\" (environment: MCP_TRANSPORT)")
	fs.StringVar(&p.addr, "addr", osenv.Value("MCP_ADDR", "127.0.0.1:8483"), "listener `address` for the http transport (environment: MCP_ADDR)")
	fs.StringVar(&p.cfgFile, "api-config", osenv.Value("API_CONFIG", ""), "API limits configuration `file` (optional)")
	fs.StringVar(&p.logFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&p.jsonLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.StringVar(&p.traceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `file` (optional)")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.BoolVar(&p.printVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return params{}, err
	}
	if fs.NArg() > 0 {
		return params{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return p, nil
}

package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dcccxiii/siderealcore/internal/api"
	"github.com/dcccxiii/siderealcore/internal/config"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/logging"
	"github.com/dcccxiii/siderealcore/internal/service"
)

// Run is the CLI entry point. It parses args, opens the ephemeris handle,
// and serves the chart dispatcher over HTTP until the process is killed.
func Run(args []string) error {
	fs := flag.NewFlagSet("siderealcore", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: siderealcore [--addr <host:port>] [--ephe-path <dir>]\n\n")
		fs.PrintDefaults()
	}

	addrFlag := fs.String("addr", ":8080", "address to listen on")
	ephePathFlag := fs.String("ephe-path", "", "ephemeris data directory (default: EPHEMERIS_PATH env var, or ./ephe next to the executable)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	ephePath := *ephePathFlag
	if ephePath == "" {
		ephePath = config.EphemerisPath()
	}
	if ephePath == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not resolve executable path: %w", err)
		}
		ephePath = filepath.Join(filepath.Dir(exe), "ephe")
	}

	ephemeris.SetEphePath(ephePath)
	ephemeris.SetSidMode()
	defer ephemeris.Close()

	svc := service.New()
	srv := api.NewServer(svc)

	logging.L().Info().Str("addr", *addrFlag).Str("ephe_path", ephePath).Msg("starting siderealcore")
	return http.ListenAndServe(*addrFlag, srv.Router())
}

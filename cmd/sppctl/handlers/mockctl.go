package handlers

import (
	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/cmd/sppctl/utils"
	"github.com/concave-dev/spp/internal/ctlmock"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/validate"
	"github.com/spf13/cobra"
)

// HandleMockCtl serves a fake spp-ctl with a running primary and the
// configured secondaries until the listener fails.
func HandleMockCtl(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if err := validate.ValidateListenAddress(config.MockCtl.Listen); err != nil {
		return err
	}

	srv := ctlmock.New()
	for _, id := range config.MockCtl.Secondaries {
		srv.AddSecondary(id)
	}
	logging.Info("Fake secondaries: %v", config.MockCtl.Secondaries)

	return srv.Serve(config.MockCtl.Listen)
}

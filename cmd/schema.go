package cmd

import (
	"fmt"

	"github.com/alex-pricope/hackathon-judging/api"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the SQL tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if err := conf.ValidateStorage(); err != nil {
			return err
		}
		if conf.Driver == api.DriverDynamo {
			return fmt.Errorf("schema: dynamodb tables are provisioned outside the service")
		}

		db, err := storage.OpenSQL(cmd.Context(), conf.Driver, conf.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.CreateSchema(cmd.Context()); err != nil {
			return err
		}
		logging.Log.Infof("SCHEMA: %s schema is up to date", conf.Driver)
		return nil
	},
}

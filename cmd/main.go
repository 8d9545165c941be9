/*
Copyright 2025 DukaRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dukahq/dukarecon"
	"github.com/dukahq/dukarecon/config"
	"github.com/dukahq/dukarecon/database"
	"github.com/dukahq/dukarecon/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// DukaRecon represents the CLI application, encapsulating the root Cobra command.
type DukaRecon struct {
	cmd *cobra.Command
}

// reconInstance holds the Recon instance and its configuration, shared by the
// subcommands through the persistent pre-run hook.
type reconInstance struct {
	recon *dukarecon.Recon
	cnf   *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the Recon instance before
// running any command.
func preRun(app *reconInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("dukarecon.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newRecon, err := setupRecon(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.recon = newRecon
		app.cnf = cnf

		return nil
	}
}

// setupRecon creates and initializes a new Recon instance based on the
// provided configuration.
func setupRecon(cfg *config.Configuration) (*dukarecon.Recon, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	newRecon, err := dukarecon.NewRecon(db)
	if err != nil {
		return nil, fmt.Errorf("error creating recon: %v", err)
	}
	return newRecon, nil
}

// NewCLI creates the command-line interface for the DukaRecon application.
func NewCLI() *DukaRecon {
	var configFile string
	b := &reconInstance{}

	var rootCmd = &cobra.Command{
		Use:   "dukarecon",
		Short: "Mobile money reconciliation for duka owners",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./dukarecon.json", "Configuration file for dukarecon")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))
	rootCmd.AddCommand(workerCommands(b))
	rootCmd.AddCommand(configCommands())

	return &DukaRecon{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during
// execution.
func (w DukaRecon) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}

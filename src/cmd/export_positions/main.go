package main

import (
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/eventservices"
	"github.com/idiazm/optrack/src/portfolio"
	"github.com/idiazm/optrack/src/utils"
)

type RunArgs struct {
	GoEnv  string
	Format string
	Out    string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_positions/main.go --format csv --out positions.csv",
	Short: "Export the positions snapshot as a table or CSV",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.Fatalf("error getting format: %v", err)
		}

		out, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		if err := Run(RunArgs{GoEnv: goEnv, Format: format, Out: out}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	portfolioConfigFile, err := utils.GetEnv("PORTFOLIO_CONFIG_FILE")
	if err != nil {
		log.Fatalf("$PORTFOLIO_CONFIG_FILE not set: %v", err)
	}

	configBytes, err := os.ReadFile(path.Join(projectsDir, "optrack", "src", portfolioConfigFile))
	if err != nil {
		return fmt.Errorf("failed to read portfolio config: %w", err)
	}

	var config eventmodels.PortfolioConfigYAML
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		return fmt.Errorf("failed to unmarshal portfolio config: %w", err)
	}

	config.SetDefaults()

	store := portfolio.NewSnapshotStore(path.Join(projectsDir, "optrack", config.DataDir), config.PositionsFile)

	positions, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load positions snapshot: %w", err)
	}

	output := os.Stdout
	if args.Out != "" {
		f, err := os.Create(args.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args.Out, err)
		}

		defer f.Close()
		output = f
	}

	switch args.Format {
	case "table":
		fmt.Fprint(output, eventservices.PositionsTable(positions))
	case "csv":
		if err := eventservices.ExportPositionsCSV(positions, output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", args.Format)
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment: development or production")
	runCmd.PersistentFlags().String("format", "table", "Output format: table or csv")
	runCmd.PersistentFlags().String("out", "", "Output file; stdout when empty")

	runCmd.Execute()
}

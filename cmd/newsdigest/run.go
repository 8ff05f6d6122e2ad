package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/usecase"
)

var runFlags struct {
	domains []string
	stock   string
	sector  string
	topic   string
	team    string
	sport   string
	noInput bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the digest once and print it",
	Long: `Collects domain parameters through an interactive form (or from
flags with --no-input), runs the selected domain pipelines, and prints
the bullet summaries.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().StringSliceVar(&runFlags.domains, "domains", nil, "domains to run (finance, technology, sports)")
	runCmd.Flags().StringVar(&runFlags.stock, "stock", "", "finance: stock name")
	runCmd.Flags().StringVar(&runFlags.sector, "sector", "", "finance: sector")
	runCmd.Flags().StringVar(&runFlags.topic, "topic", "", "technology: topic")
	runCmd.Flags().StringVar(&runFlags.team, "team", "", "sports: team")
	runCmd.Flags().StringVar(&runFlags.sport, "sport", "", "sports: cricket or football")
	runCmd.Flags().BoolVar(&runFlags.noInput, "no-input", false, "skip the interactive form, use flags and defaults")
}

func runDigest(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)

	queries, err := collectQueries(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no domains selected")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	digests, err := application.RunQueries(ctx, queries)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), usecase.RenderText(digests))
	return nil
}

// collectQueries merges flags, defaults, and (unless --no-input) the
// interactive form into one DomainQuery per selected domain.
func collectQueries(cfg config.Config, in io.Reader, out io.Writer) ([]domain.DomainQuery, error) {
	reader := bufio.NewReader(in)
	ask := !runFlags.noInput

	selected := runFlags.domains
	if len(selected) == 0 {
		if ask {
			answer := prompt(reader, out, "Domains (finance,technology,sports)", "finance,technology,sports")
			selected = strings.Split(answer, ",")
		} else {
			selected = []string{"finance", "technology", "sports"}
		}
	}

	var queries []domain.DomainQuery
	for _, name := range selected {
		d, err := parseDomain(name)
		if err != nil {
			return nil, err
		}

		q := domain.DomainQuery{Domain: d}
		switch d {
		case domain.DomainFinance:
			q.Stock = fieldValue(reader, out, ask, "Stock", runFlags.stock, cfg.Defaults.Stock)
			q.Sector = fieldValue(reader, out, ask, "Sector", runFlags.sector, cfg.Defaults.Sector)
		case domain.DomainTech:
			q.Topic = fieldValue(reader, out, ask, "Tech topic", runFlags.topic, cfg.Defaults.Topic)
		case domain.DomainSports:
			q.Team = fieldValue(reader, out, ask, "Team", runFlags.team, cfg.Defaults.Team)
			q.Sport = fieldValue(reader, out, ask, "Sport (cricket/football)", runFlags.sport, cfg.Defaults.Sport)
		}
		queries = append(queries, q)
	}

	return queries, nil
}

func fieldValue(reader *bufio.Reader, out io.Writer, ask bool, label, flagValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if !ask {
		return def
	}
	return prompt(reader, out, label, def)
}

func prompt(reader *bufio.Reader, out io.Writer, label, def string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	if line = strings.TrimSpace(line); line != "" {
		return line
	}
	return def
}

func parseDomain(name string) (domain.Domain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "finance":
		return domain.DomainFinance, nil
	case "technology", "tech":
		return domain.DomainTech, nil
	case "sports", "sport":
		return domain.DomainSports, nil
	default:
		return "", fmt.Errorf("unknown domain %q (expected finance, technology, or sports)", name)
	}
}

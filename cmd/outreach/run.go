package main

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"outreach-engine/internal/outreach"
	"outreach-engine/internal/pipeline"
)

var runFlags struct {
	goal               string
	maxCompanies       int
	maxProspects       int
	dryRun             bool
	template           string
	exportFormat       string
	linkedin           bool
	maxLinkedinResults int
	days               int

	name   string
	email  string
	skills string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full discovery, enrichment and outreach pass",
	RunE:  runPipeline,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.goal, "goal", "", "what you are looking for, e.g. \"backend roles at fintech startups\"")
	f.IntVar(&runFlags.maxCompanies, "max-companies", 10, "companies to discover")
	f.IntVar(&runFlags.maxProspects, "max-prospects", 5, "prospects per company")
	f.BoolVar(&runFlags.dryRun, "dry-run", false, "generate messages but do not send")
	f.StringVar(&runFlags.template, "template", "", "message template file")
	f.StringVar(&runFlags.exportFormat, "export-format", "json", "run artifact format: json or csv")
	f.BoolVar(&runFlags.linkedin, "linkedin", false, "search profiles directly instead of walking companies")
	f.IntVar(&runFlags.maxLinkedinResults, "max-linkedin-results", 20, "profiles in linkedin mode")
	f.IntVar(&runFlags.days, "days", 0, "only use search results newer than this many days (0 = config default)")
	f.StringVar(&runFlags.name, "name", "", "your name, used in generated messages")
	f.StringVar(&runFlags.email, "email", "", "your email, used in generated messages")
	f.StringVar(&runFlags.skills, "skills", "", "your skills, used in generated messages")
	_ = runCmd.MarkFlagRequired("goal")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if runFlags.exportFormat != "json" && runFlags.exportFormat != "csv" {
		return fmt.Errorf("export format must be json or csv, got %q", runFlags.exportFormat)
	}

	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.close()

	if runFlags.days > 0 {
		a.cfg.Search.DaysFilter = runFlags.days
	}

	lc, err := a.buildLLM()
	if err != nil {
		return err
	}
	disc, err := a.buildDiscovery(lc)
	if err != nil {
		return err
	}
	enr, err := a.buildEnrich()
	if err != nil {
		return err
	}
	out, err := a.buildOutreach(lc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(disc, enr, out)
	res, err := runner.Run(ctx, pipeline.Options{
		Goal:               runFlags.goal,
		MaxCompanies:       runFlags.maxCompanies,
		MaxProspects:       runFlags.maxProspects,
		LinkedIn:           runFlags.linkedin,
		MaxLinkedInResults: runFlags.maxLinkedinResults,
		DryRun:             runFlags.dryRun,
		TemplatePath:       runFlags.template,
		DropNoEmail:        true,
		User: &outreach.UserInfo{
			Name:   runFlags.name,
			Email:  runFlags.email,
			Skills: runFlags.skills,
			Goal:   runFlags.goal,
		},
	})
	if err != nil {
		return err
	}
	pipeline.LogSummary(res)

	path := pipeline.ExportPath(a.dataDir, runFlags.exportFormat, time.Now())
	if runFlags.exportFormat == "csv" {
		err = pipeline.WriteCSV(path, res)
	} else {
		err = pipeline.WriteJSON(path, res)
	}
	if err != nil {
		return err
	}
	log.Printf("[run] results written to %s", path)
	return nil
}

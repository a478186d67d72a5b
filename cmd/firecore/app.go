package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/config"
	"github.com/buildsafe/firecore/goldenthread"
	"github.com/buildsafe/firecore/llm"
	"github.com/buildsafe/firecore/render"
	"github.com/buildsafe/firecore/store"
	"github.com/buildsafe/firecore/vision"
)

type configLoader func() (*config.Config, error)

// planDocument is the on-disk form consumed by the render command.
type planDocument struct {
	Plan     autoplan.Plan      `json:"plan"`
	Building autoplan.Building  `json:"building"`
	Floor    autoplan.Floor     `json:"floor"`
	Approval *autoplan.Approval `json:"approval,omitempty"`
}

func newAnalyzeCmd(loadCfg configLoader) *cobra.Command {
	var (
		buildingPath string
		mediaType    string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a floor-plan image for fire safety elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			var building autoplan.Building
			if buildingPath != "" {
				data, err := os.ReadFile(buildingPath)
				if err != nil {
					return fmt.Errorf("read building file: %w", err)
				}
				if err := yaml.Unmarshal(data, &building); err != nil {
					return fmt.Errorf("parse building file: %w", err)
				}
			}

			client := llm.NewClient(llm.Endpoint{
				Provider:  cfg.Vision.Provider,
				URL:       cfg.Vision.Endpoint,
				Model:     cfg.Vision.Model,
				MaxTokens: cfg.Vision.MaxTokens,
			}, llm.WithHTTPClient(&http.Client{Timeout: cfg.Vision.Timeout}))

			analyzer := vision.NewAnalyzer(client)
			result, err := analyzer.Analyze(cmd.Context(), image, mediaType, building)
			if err != nil {
				return fmt.Errorf("analyze floor plan: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			if err := writeOutput(outPath, out); err != nil {
				return err
			}

			detected := len(result.Elements.Exits) + len(result.Elements.FireDoors) +
				len(result.Elements.Staircases) + len(result.Elements.Equipment) +
				len(result.Elements.Corridors) + len(result.Elements.Rooms)
			fmt.Printf("%s detected %d elements, %d symbol suggestions (confidence %.2f)\n",
				color.New(color.FgGreen).Sprint("Analysis complete:"),
				detected, len(result.SuggestedSymbols), result.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&buildingPath, "building", "", "Building attributes file (YAML)")
	cmd.Flags().StringVar(&mediaType, "media-type", "image/png", "Image MIME type")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: stdout)")
	return cmd
}

func newRenderCmd(loadCfg configLoader) *cobra.Command {
	var (
		sourcePath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "render <plan.json>",
		Short: "Render a fire safety plan as an A3 PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}

			data, readErr := os.ReadFile(args[0])
			if readErr != nil {
				return fmt.Errorf("read plan document: %w", readErr)
			}
			var doc planDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse plan document: %w", err)
			}

			var source []byte
			if sourcePath != "" {
				if source, err = os.ReadFile(sourcePath); err != nil {
					return fmt.Errorf("read source PDF: %w", err)
				}
			}

			out, err := render.NewRenderer(render.WithBranding(cfg.Branding.CompanyName)).Render(render.Input{
				Plan:      doc.Plan,
				Building:  doc.Building,
				Floor:     doc.Floor,
				Approval:  doc.Approval,
				SourcePDF: source,
			})
			if err != nil {
				return fmt.Errorf("render plan: %w", err)
			}

			if outPath == "" {
				outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
			}
			if err := os.WriteFile(outPath, out, 0644); err != nil {
				return fmt.Errorf("write PDF: %w", err)
			}

			fmt.Printf("%s %s (%s, version %d)\n",
				color.New(color.FgGreen).Sprint("Rendered"),
				outPath, doc.Plan.Reference, doc.Plan.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source floor-plan PDF to embed")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path")
	return cmd
}

func newCompileCmd(loadCfg configLoader) *cobra.Command {
	var (
		orgID       string
		buildingRef string
		actor       string
		outDir      string
		formats     []string
	)

	cmd := &cobra.Command{
		Use:   "compile <project-id>",
		Short: "Compile, validate and export a golden thread package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			ref := packageReference()
			compiler := goldenthread.NewCompiler(db)
			data, err := compiler.Compile(ctx, goldenthread.CompileRequest{
				ProjectID:         args[0],
				OrganizationID:    orgID,
				PackageReference:  ref,
				BuildingReference: buildingRef,
			})
			if err != nil {
				return fmt.Errorf("compile golden thread: %w", err)
			}

			result := goldenthread.Validate(data)
			printValidation(result)

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := writeExports(data, result, outDir, formats); err != nil {
				return err
			}

			if err := db.RecordPackage(ctx, goldenthread.PackageRecord{
				ID:               uuid.New().String(),
				ProjectID:        data.ProjectID,
				OrganizationID:   orgID,
				PackageReference: ref,
				Score:            result.Score,
				GeneratedAt:      data.GeneratedAt,
				Action:           "generated",
				Actor:            actor,
			}); err != nil {
				return fmt.Errorf("record package: %w", err)
			}

			fmt.Printf("%s %s written to %s\n",
				color.New(color.FgGreen).Sprint("Package"), ref, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization ID")
	cmd.Flags().StringVar(&buildingRef, "building-ref", "", "Building reference override (HRB/UPRN)")
	cmd.Flags().StringVar(&actor, "actor", "", "Actor recorded in the audit trail")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Output directory")
	cmd.Flags().StringSliceVar(&formats, "formats", []string{"json", "csv", "pdf"}, "Export formats (json, csv, pdf)")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func writeExports(data *goldenthread.GoldenThreadData, result goldenthread.ValidationResult, outDir string, formats []string) error {
	for _, format := range formats {
		switch strings.ToLower(format) {
		case "json":
			out, err := goldenthread.ExportJSON(data, &result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(outDir, "golden_thread.json"), out, 0644); err != nil {
				return fmt.Errorf("write JSON export: %w", err)
			}
		case "csv":
			files, err := goldenthread.ExportCSVs(data)
			if err != nil {
				return err
			}
			for name, content := range files {
				if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
			}
		case "pdf":
			out, err := goldenthread.ExportPDF(data, result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(outDir, "golden_thread.pdf"), out, 0644); err != nil {
				return fmt.Errorf("write PDF export: %w", err)
			}
		default:
			return fmt.Errorf("unknown export format: %q", format)
		}
	}
	return nil
}

func printValidation(result goldenthread.ValidationResult) {
	status := func(ok bool) string {
		if ok {
			return color.New(color.FgGreen).Sprint("COMPLIANT")
		}
		return color.New(color.FgRed).Sprint("NON-COMPLIANT")
	}

	fmt.Printf("Section 88: %s\n", status(result.Section88Compliant))
	fmt.Printf("Section 91: %s\n", status(result.Section91Compliant))
	fmt.Printf("Score: %d/100\n", result.Score)

	for _, w := range result.Warnings {
		var tag string
		switch w.Severity {
		case goldenthread.SeverityError:
			tag = color.New(color.FgRed).Sprint("[ERROR]")
		case goldenthread.SeverityWarning:
			tag = color.New(color.FgYellow).Sprint("[WARN]")
		default:
			tag = color.New(color.FgCyan).Sprint("[INFO]")
		}
		fmt.Printf("  %s %s %s\n", tag, w.Code, w.Message)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func packageReference() string {
	return "GT-" + strings.ToUpper(uuid.New().String()[:8])
}

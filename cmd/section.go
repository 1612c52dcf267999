package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	sectionListType  string
	sectionListSort  string
	sectionListLimit int

	sectionSearchType  string
	sectionSearchLimit int

	sectionOutlineFile   string
	sectionOutlineExport string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Browse the shape database and built-up outlines",
	Long: `Query the AISC shape database and compute properties of built-up
sections defined as plate outlines in JSON files.

Subcommands:
  show     - Print every property of a shape
  list     - List the shapes of one family
  search   - Find shapes by name
  outline  - Calculate properties of a polygonal outline

Example outline JSON:
{
  "name": "Built-up I 400x200",
  "vertices": [
    {"x": 0, "y": 0}, {"x": 200, "y": 0}, {"x": 200, "y": 16},
    {"x": 104, "y": 16}, {"x": 104, "y": 384}, {"x": 200, "y": 384},
    {"x": 200, "y": 400}, {"x": 0, "y": 400}, {"x": 0, "y": 384},
    {"x": 96, "y": 384}, {"x": 96, "y": 16}, {"x": 0, "y": 16}
  ]
}`,
}

var sectionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the properties of a shape",
	Long: `Print every stored property of a shape in display units.

Names are matched case-insensitively against both the imperial and the
metric designation.

Examples:
  gosteel section show W18X50
  gosteel section show W460X74`,
	Args: cobra.ExactArgs(1),
	Run:  runSectionShow,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the shapes of a family",
	Long: `List the shapes of one family ordered by a stored property.

Examples:
  gosteel section list --type W
  gosteel section list --type HSS --sort A --limit 20`,
	Run: runSectionList,
}

var sectionSearchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Find shapes whose name contains a pattern",
	Long: `Find shapes whose designation contains the pattern.

Examples:
  gosteel section search X50
  gosteel section search 14X --type W --limit 10`,
	Args: cobra.ExactArgs(1),
	Run:  runSectionSearch,
}

var sectionOutlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Calculate properties of a built-up outline",
	Long: `Calculate area, centroid, moments of inertia, elastic and plastic
moduli of a section defined by its boundary vertices (mm).

Examples:
  gosteel section outline --file built-up.json
  gosteel section outline -f built-up.json --export outline.svg`,
	Run: runSectionOutline,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionShowCmd, sectionListCmd, sectionSearchCmd, sectionOutlineCmd)

	sectionListCmd.Flags().StringVar(&sectionListType, "type", "W", "Shape family (W, HP, C, L, HSS, ...)")
	sectionListCmd.Flags().StringVar(&sectionListSort, "sort", "W", "Property to sort by")
	sectionListCmd.Flags().IntVarP(&sectionListLimit, "limit", "n", 0, "Maximum number of shapes (0 for all)")

	sectionSearchCmd.Flags().StringVar(&sectionSearchType, "type", "", "Restrict to one shape family")
	sectionSearchCmd.Flags().IntVarP(&sectionSearchLimit, "limit", "n", 25, "Maximum number of results")

	sectionOutlineCmd.Flags().StringVarP(&sectionOutlineFile, "file", "f", "", "Path to outline JSON file [required]")
	sectionOutlineCmd.Flags().StringVarP(&sectionOutlineExport, "export", "o", "", "Export outline drawing to file (png, svg, pdf)")
	sectionOutlineCmd.MarkFlagRequired("file")
}

func runSectionShow(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sec, err := ws.db.Lookup(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("SECTION " + sec.String())

	printHeading("Properties")
	w := newTable()
	fmt.Fprintf(w, "  Type:\t%s\n", sec.Type())
	for _, k := range sec.Record().Keys() {
		q, ok := sec.Get(k)
		if !ok || strings.HasSuffix(k, "_imp") {
			continue
		}
		u, _ := section.UnitOf(k)
		if q.Dim() == units.Dimensionless {
			fmt.Fprintf(w, "  %s:\t%.4g\n", k, q.SI())
			continue
		}
		fmt.Fprintf(w, "  %s:\t%s\n", k, q.Format(u, 4))
	}
	w.Flush()
	fmt.Println()
}

func runSectionList(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	t, err := section.ParseShapeType(sectionListType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	names := ws.db.ByType(t, sectionListSort)
	if len(names) == 0 {
		fmt.Printf("No %s shapes in the database. Families present: %s\n", t, joinTypes(ws.db.Types()))
		return
	}
	if sectionListLimit > 0 && len(names) > sectionListLimit {
		names = names[:sectionListLimit]
	}
	printShapeTable(ws.db, names, sectionListSort)
}

func runSectionSearch(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	var t section.ShapeType
	if sectionSearchType != "" {
		if t, err = section.ParseShapeType(sectionSearchType); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	names := ws.db.Search(args[0], t, sectionSearchLimit)
	if len(names) == 0 {
		fmt.Printf("No shapes match %q.\n", args[0])
		return
	}
	printShapeTable(ws.db, names, "W")
}

// printShapeTable prints name, metric name, type and one sort property.
func printShapeTable(db *section.Database, names []string, prop string) {
	w := newTable()
	fmt.Fprintf(w, "  Name\tMetric\tType\t%s\n", prop)
	fmt.Fprintf(w, "  ────\t──────\t────\t%s\n", strings.Repeat("─", len(prop)))
	for _, name := range names {
		sec, err := db.Lookup(name)
		if err != nil {
			continue
		}
		v := "-"
		if raw, ok := sec.Record().Raw(prop); ok {
			v = fmt.Sprintf("%.4g", raw)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", sec.Name(), sec.Record().MetricName(), sec.Type(), v)
	}
	w.Flush()
	fmt.Printf("\n  %d shape(s)\n\n", len(names))
}

func joinTypes(types []section.ShapeType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

func runSectionOutline(cmd *cobra.Command, args []string) {
	o, err := section.LoadOutline(sectionOutlineFile)
	if err != nil {
		fmt.Printf("Error loading outline: %v\n", err)
		return
	}
	props := o.CalculateProperties()

	printBanner("BUILT-UP SECTION PROPERTIES")
	fmt.Printf("  Section: %s\n", o.Name)
	fmt.Printf("  Vertices: %d\n\n", len(o.Vertices))

	printHeading("Geometric properties")
	w := newTable()
	fmt.Fprintf(w, "  Width × Height:\t%.1f × %.1f mm\n", props.Width, props.Height)
	fmt.Fprintf(w, "  Area (A):\t%.1f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x̄, ȳ):\t%.2f, %.2f mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Ix / Iy:\t%.4g / %.4g mm⁴\n", props.Ix, props.Iy)
	fmt.Fprintf(w, "  Sx / Sy:\t%.4g / %.4g mm³\n", props.Sx, props.Sy)
	fmt.Fprintf(w, "  Zx / Zy:\t%.4g / %.4g mm³\n", props.Zx, props.Zy)
	fmt.Fprintf(w, "  rx / ry:\t%.2f / %.2f mm\n", props.Rx, props.Ry)
	w.Flush()
	fmt.Println()

	if sectionOutlineExport != "" {
		if err := diagram.ExportOutline(o, sectionOutlineExport); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
			return
		}
		fmt.Printf("  Diagram exported to: %s\n\n", sectionOutlineExport)
	}
}

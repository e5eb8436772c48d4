package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/dataset"
)

// Vocabulary for assembled product names.
var adjectives = []string{
	"Wooden", "Magnetic", "Deluxe", "Classic", "Foldable", "Giant",
	"Mini", "Glow-in-the-Dark", "Remote Control", "Inflatable",
	"Educational", "Plush", "Stackable", "Musical", "Solar-Powered",
	"Interactive", "Vintage", "Waterproof", "Collapsible", "Premium",
}

var products = []string{
	"Building Blocks Set", "Science Experiment Kit", "Train Track Bundle",
	"Puzzle Cube", "Art Easel", "Dinosaur Figure Pack", "Marble Run",
	"Craft Loom", "Chemistry Lab", "Rocket Launcher", "Balance Bike",
	"Dollhouse", "Kite", "Telescope", "Drum Kit", "Race Car Track",
	"Stuffed Bear", "Magic Set", "Board Game", "Robot Kit",
	"Play Kitchen", "Sandbox Digger", "Water Table", "Gem Excavation Dig",
}

// Category paths mirror the pipe-delimited cells of the source catalogs.
var categoryPaths = []string{
	"Toys & Games | Learning & Education | Science Kits & Toys",
	"Toys & Games | Building Toys | Building Sets",
	"Toys & Games | Arts & Crafts | Craft Kits",
	"Toys & Games | Games | Board Games",
	"Toys & Games | Stuffed Animals & Plush Toys | Stuffed Animals & Teddy Bears",
	"Toys & Games | Vehicles | Play Trains & Railway Sets",
	"Toys & Games | Sports & Outdoor Play | Kites & Wind Spinners",
	"Toys & Games | Dolls & Accessories | Dollhouses",
	"Toys & Games | Puzzles | Brain Teasers",
	"Toys & Games | Kids' Electronics | Electronic Learning Toys",
	"Toys & Games | Baby & Toddler Toys | Push & Pull Toys",
	"Toys & Games | Party Supplies | Party Favors",
	"Sports & Outdoors | Outdoor Recreation | Camping & Hiking",
	"Home & Kitchen | Kids' Home Store | Kids' Furniture",
}

var descriptionLeads = []string{
	"Make sure this fits by entering your model number.",
	"Bring learning home with a hands-on favorite.",
	"Designed for curious minds and busy hands.",
	"A family favorite for rainy afternoons.",
	"Built to survive the playroom.",
}

var descriptionTails = []string{
	"Encourages fine motor skills, creativity, and cooperative play.",
	"Includes illustrated instructions and a storage box.",
	"Non-toxic materials tested to ASTM safety standards.",
	"No tools required for assembly.",
	"Batteries not included.",
	"Backed by a 90-day replacement guarantee.",
}

// Specification keys are glued the way the source catalogs glue them, so a
// generated file exercises the same normalization path as a real one.
var ageRanges = []string{
	"3yearsandup", "36months-6years", "5-12years", "8yearsandup", "14yearsandup",
}

var modelPrefixes = []string{"TX", "KD", "WB", "LF", "QR"}

var (
	outPath  = flag.String("out", "sample-catalog.csv", "path for the generated catalog (.csv or .csv.gz)")
	rowCount = flag.Int("rows", 200, "number of product rows to generate")
	seed     = flag.Int64("seed", 1, "random seed, fixed so runs are reproducible")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// randomASIN builds a plausible ten-character identifier starting with B0.
func randomASIN(rng *rand.Rand) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 8)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return "B0" + string(b)
}

// specCell assembles a pipe-delimited specification cell of glued fragments.
func specCell(rng *rand.Rand) string {
	weight := float64(rng.Intn(120)+2) / 10
	fragments := []string{
		fmt.Sprintf("ProductDimensions:%d.%dx%d.%dx%d.%dinches",
			rng.Intn(20)+2, rng.Intn(10),
			rng.Intn(15)+2, rng.Intn(10),
			rng.Intn(10)+1, rng.Intn(10)),
		fmt.Sprintf("ItemWeight:%.1fpounds", weight),
		fmt.Sprintf("ShippingWeight:%.1fpounds(Viewshippingratesandpolicies)", weight+0.3),
		fmt.Sprintf("ASIN:%s", randomASIN(rng)),
		fmt.Sprintf("Itemmodelnumber:%s-%d",
			modelPrefixes[rng.Intn(len(modelPrefixes))], rng.Intn(9000)+1000),
		fmt.Sprintf("Manufacturerrecommendedage:%s", ageRanges[rng.Intn(len(ageRanges))]),
	}

	if rng.Intn(4) == 0 {
		fragments = append(fragments,
			fmt.Sprintf("Batteries:%dAAbatteriesrequired.", rng.Intn(3)+1))
	}
	// Some source rows carry a stray fragment with no colon. The parser is
	// expected to drop it, so the sample data includes it now and then.
	if rng.Intn(10) == 0 {
		fragments = append(fragments, "Viewshippingratesandpolicies")
	}

	return strings.Join(fragments, "|")
}

// buildRow assembles one catalog row keyed by the source column names.
func buildRow(rng *rand.Rand) map[string]string {
	name := fmt.Sprintf("%s %s",
		adjectives[rng.Intn(len(adjectives))],
		products[rng.Intn(len(products))])

	description := fmt.Sprintf("%s %s %s",
		descriptionLeads[rng.Intn(len(descriptionLeads))],
		name+" keeps kids engaged for hours.",
		descriptionTails[rng.Intn(len(descriptionTails))])

	categories := categoryPaths[rng.Intn(len(categoryPaths))]
	// One row in ten repeats its leaf category, which the loader must still
	// collapse into a single relationship.
	if rng.Intn(10) == 0 {
		parts := strings.Split(categories, " | ")
		categories = categories + " | " + parts[len(parts)-1]
	}

	spec := specCell(rng)
	// A few rows ship with no specification at all.
	if rng.Intn(20) == 0 {
		spec = ""
	}

	return map[string]string{
		core.ColumnName:          name,
		core.ColumnDescription:   description,
		core.ColumnPrice:         fmt.Sprintf("$%d.%02d", rng.Intn(90)+5, rng.Intn(100)),
		core.ColumnCategory:      categories,
		core.ColumnSpecification: spec,
	}
}

func main() {
	rng := rand.New(rand.NewSource(*seed))

	table := &dataset.Table{
		Columns: []string{
			core.ColumnName,
			core.ColumnDescription,
			core.ColumnPrice,
			core.ColumnCategory,
			core.ColumnSpecification,
		},
		Rows: make([]map[string]string, 0, *rowCount),
	}
	for range *rowCount {
		table.Rows = append(table.Rows, buildRow(rng))
	}

	if err := dataset.WriteCSV(*outPath, table); err != nil {
		panic(err)
	}

	slog.Info("wrote sample catalog", "path", *outPath, "rows", len(table.Rows))
}

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog"

	"github.com/timotheicorneille/grocy-products/env"
	"github.com/timotheicorneille/grocy-products/grocy"
	"github.com/timotheicorneille/grocy-products/types"
)

// Default timeout applied to each request against the Grocy API
const defaultRequestTimeout = 30 * time.Second

// Importer replicates products from a delimited input file into a Grocy
// server, creating missing reference entities (quantity units, storage
// locations, product groups) on demand.
// Reference entities are deduplicated per name through in-memory caches
// seeded once per run, so repeated runs don't create duplicates
type Importer struct {
	client *grocy.Client
	logger zerolog.Logger

	units     *Cache
	locations *Cache
	groups    *Cache
}

// NewImporter loads connection values from the environment
// and creates the importer
// (doesn't make any network calls)
func NewImporter(logger zerolog.Logger) (*Importer, error) {
	baseURL, err := env.GetEnv("Grocy base URL", "GROCY_BASE_URL")
	if err != nil {
		return nil, err
	}

	apiKey, err := env.GetEnv("Grocy API key", "GROCY_API_KEY")
	if err != nil {
		return nil, err
	}

	timeout, err := env.GetDurationEnvOrDefault("Grocy request timeout",
		"GROCY_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	return NewImporterWith(grocy.NewClient(baseURL, apiKey, timeout), logger), nil
}

// NewImporterWith creates the importer around an existing client
func NewImporterWith(client *grocy.Client, logger zerolog.Logger) *Importer {
	return &Importer{
		client:    client,
		logger:    logger,
		units:     NewCache(),
		locations: NewCache(),
		groups:    NewCache(),
	}
}

// LoadExistingData seeds the three reference entity caches from the
// server's current object lists.
// Must be called once before any resolve or create operation;
// failure of any of the three reads is fatal to the run
func (i *Importer) LoadExistingData(ctx context.Context) error {
	i.logger.Info().Msg("loading existing reference data")

	units, err := i.client.QuantityUnits(ctx)
	if err != nil {
		return err
	}
	unitIDs := make(map[string]int)
	for _, unit := range units {
		unitIDs[unit.Name] = int(unit.ID)
	}
	i.units.Load(unitIDs)

	locations, err := i.client.Locations(ctx)
	if err != nil {
		return err
	}
	locationIDs := make(map[string]int)
	for _, location := range locations {
		locationIDs[location.Name] = int(location.ID)
	}
	i.locations.Load(locationIDs)

	groups, err := i.client.ProductGroups(ctx)
	if err != nil {
		return err
	}
	groupIDs := make(map[string]int)
	for _, group := range groups {
		groupIDs[group.Name] = int(group.ID)
	}
	i.groups.Load(groupIDs)

	i.logger.Info().
		Int("units", i.units.Len()).
		Int("locations", i.locations.Len()).
		Int("groups", i.groups.Len()).
		Msg("loaded existing reference data")

	return nil
}

// Pluralize derives a plural display name by appending "s",
// leaving names that already end in "s" untouched.
// Not locale-aware
func Pluralize(name string) string {
	if strings.HasSuffix(name, "s") {
		return name
	}

	return name + "s"
}

// Shared get-or-create routine for the three reference entity kinds:
// a cache hit returns the known identifier without any network call,
// a miss issues exactly one create and remembers the new identifier
func (i *Importer) resolveOrCreate(ctx context.Context, kind string, cache *Cache, name string,
	create func(context.Context, string) (int, error)) (int, error) {
	if id, ok := cache.Lookup(name); ok {
		return id, nil
	}

	i.logger.Info().Str("kind", kind).Str("name", name).Msg("creating reference entity")
	id, err := create(ctx, name)
	if err != nil {
		return 0, err
	}

	cache.Insert(name, id)
	return id, nil
}

// ResolveUnit gets the identifier for the named quantity unit,
// creating it on the server first if it isn't known yet
func (i *Importer) ResolveUnit(ctx context.Context, name string) (int, error) {
	return i.resolveOrCreate(ctx, "quantity_unit", i.units, name,
		func(ctx context.Context, name string) (int, error) {
			return i.client.CreateQuantityUnit(ctx, types.NewQuantityUnit{
				Name:        name,
				Description: fmt.Sprintf("Unit %s", name),
				NamePlural:  Pluralize(name),
			})
		})
}

// ResolveLocation gets the identifier for the named storage location,
// creating it on the server first if it isn't known yet
func (i *Importer) ResolveLocation(ctx context.Context, name string) (int, error) {
	return i.resolveOrCreate(ctx, "location", i.locations, name,
		func(ctx context.Context, name string) (int, error) {
			return i.client.CreateLocation(ctx, types.NewLocation{
				Name:        name,
				Description: fmt.Sprintf("Location %s", name),
			})
		})
}

// ResolveGroup gets the identifier for the named product group,
// creating it on the server first if it isn't known yet
func (i *Importer) ResolveGroup(ctx context.Context, name string) (int, error) {
	return i.resolveOrCreate(ctx, "product_group", i.groups, name,
		func(ctx context.Context, name string) (int, error) {
			return i.client.CreateProductGroup(ctx, types.NewProductGroup{
				Name:        name,
				Description: fmt.Sprintf("Group %s", name),
			})
		})
}

// CreateProduct creates a product referencing the three resolved identifiers,
// with tare weight handling disabled, and returns its new identifier
func (i *Importer) CreateProduct(ctx context.Context, name string,
	unitID int, locationID int, groupID int, minStock float64) (int, error) {
	return i.client.CreateProduct(ctx, types.NewProduct{
		Name:                     name,
		Description:              fmt.Sprintf("Product %s", name),
		LocationID:               locationID,
		QuantityUnitIDStock:      unitID,
		QuantityUnitIDPurchase:   unitID,
		MinStockAmount:           minStock,
		ProductGroupID:           groupID,
		EnableTareWeightHandling: 0,
	})
}

// ImportFromFile orchestrates a whole run: seeds the caches, then walks
// the input file row by row, resolving reference entities and creating
// one product per row.
// A failure inside one row is logged and the run moves on to the next
// row; a malformed API response aborts the run, since it means the
// remote contract changed
func (i *Importer) ImportFromFile(ctx context.Context, path string) error {
	start := time.Now()
	i.logger.Info().Str("path", path).Msg("starting import")

	err := i.LoadExistingData(ctx)
	if err != nil {
		return err
	}

	seededUnits := i.units.Len()
	seededLocations := i.locations.Len()
	seededGroups := i.groups.Len()

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := newRowReader(file)
	if err != nil {
		return err
	}

	imported := 0
	failed := 0
	for {
		record, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !isRowScoped(err) {
				// Malformed delimited text aborts the run
				return err
			}

			i.logRowFailure(record, err)
			failed++
			continue
		}

		err = i.importRow(ctx, record)
		if err != nil {
			var malformed *grocy.MalformedResponseError
			if errors.As(err, &malformed) {
				return err
			}

			i.logRowFailure(record, err)
			failed++
			continue
		}
		imported++
	}

	elapsed := durafmt.Parse(time.Since(start).Round(time.Millisecond)).LimitFirstN(2).String()
	i.logger.Info().
		Int("imported", imported).
		Int("failed", failed).
		Int("units_created", i.units.Len()-seededUnits).
		Int("locations_created", i.locations.Len()-seededLocations).
		Int("groups_created", i.groups.Len()-seededGroups).
		Str("elapsed", elapsed).
		Msg("import finished")

	return nil
}

// Resolves the row's reference entities in order, then creates the product
func (i *Importer) importRow(ctx context.Context, record *row) error {
	i.logger.Info().Str("name", record.Name).Msg("processing row")

	unitID, err := i.ResolveUnit(ctx, record.UnitName)
	if err != nil {
		return err
	}

	locationID, err := i.ResolveLocation(ctx, record.LocationName)
	if err != nil {
		return err
	}

	groupID, err := i.ResolveGroup(ctx, record.GroupName)
	if err != nil {
		return err
	}

	productID, err := i.CreateProduct(ctx, record.Name, unitID, locationID, groupID, record.Amount)
	if err != nil {
		return err
	}

	i.logger.Info().Str("name", record.Name).Int("product_id", productID).Msg("created product")
	return nil
}

// Logs a per-row failure using whatever fields parsed before the error;
// the row number is always available even when the name field itself
// caused the failure
func (i *Importer) logRowFailure(record *row, err error) {
	event := i.logger.Error().Err(err)
	if record != nil {
		event = event.Int("row", record.Line)
		if record.Name != "" {
			event = event.Str("name", record.Name)
		}
	}
	event.Msg("row failed; continuing with the next row")
}

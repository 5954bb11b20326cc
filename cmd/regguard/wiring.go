package main

import (
	"fmt"

	"github.com/ochairo/regguard/internal/config"
	orchestrators "github.com/ochairo/regguard/internal/domain-orchestrators"
	"github.com/ochairo/regguard/internal/domain-adapters/gateways"
	domaingateways "github.com/ochairo/regguard/internal/domain/interfaces/gateways"
	"github.com/ochairo/regguard/internal/domain/services"
	"github.com/ochairo/regguard/internal/external-adapters/gpg"
	jsonadapter "github.com/ochairo/regguard/internal/external-adapters/json"
	"github.com/ochairo/regguard/internal/external-adapters/redis"
	"github.com/ochairo/regguard/internal/external-adapters/sqlite"
	xmladapter "github.com/ochairo/regguard/internal/external-adapters/xml"
	"github.com/ochairo/regguard/internal/external-adapters/yaml"
)

// newLoaders wires the format parsers behind one document cache so every
// artifact is parsed once per run
func newLoaders(cache *gateways.DocumentCache) services.Loaders {
	yamlParser := yaml.NewConfigParser()
	xmlParser := xmladapter.NewParser()
	formParser := jsonadapter.NewFormParser()

	return services.Loaders{
		ProcessDefinition: gateways.Cached(cache, "bpmn", xmlParser.ParseProcessDefinition),
		Authorization:     gateways.Cached(cache, "bp-auth", yamlParser.ParseAuthorization),
		Integration:       gateways.Cached(cache, "bp-trembita", yamlParser.ParseIntegration),
		ProcessGroups:     gateways.Cached(cache, "bp-groups", yamlParser.ParseProcessGroups),
		Roles:             gateways.Cached(cache, "roles", yamlParser.ParseRoles),
		Form:              gateways.Cached(cache, "forms", formParser.ParseForm),
		Settings:          gateways.Cached(cache, "settings", yamlParser.ParseSettings),
		Changelog:         gateways.Cached(cache, "data-model", xmlParser.ParseChangelog),
		YAMLDocument:      gateways.Cached(cache, "yaml", yamlParser.Decode),
		JSONDocument:      gateways.Cached(cache, "json", formParser.Decode),
	}
}

func (a *app) validationOrchestrator() (*orchestrators.ValidationOrchestrator, error) {
	schemas, err := gateways.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	catalog, err := services.NewCatalog(
		newLoaders(gateways.NewDocumentCache()),
		schemas,
		services.CatalogOptions{
			DefaultRoles:     a.cfg.Roles.Default,
			RetentionMinDays: a.cfg.Settings.RetentionMinDays,
		},
		a.log().Named("validator"),
	)
	if err != nil {
		return nil, err
	}

	finder := gateways.NewArtifactFinder(a.cfg.LayoutFor())
	return orchestrators.NewValidationOrchestrator(catalog, finder, a.log()), nil
}

func (a *app) checksumOrchestrator() (*orchestrators.ChecksumOrchestrator, error) {
	stores, err := newStoreProvider(a.cfg.Store)
	if err != nil {
		return nil, err
	}

	detector := services.NewChangeDetector(stores, gateways.NewChecksumGenerator(), a.log().Named("baseline"))

	var signer domaingateways.BaselineSigner
	var verifier domaingateways.BaselineVerifier
	if key := a.cfg.Baseline.SigningKey; key != "" {
		s, err := gpg.NewSignerFromFile(key, []byte(a.cfg.Baseline.SigningPassphrase))
		if err != nil {
			return nil, fmt.Errorf("failed to load baseline signing key: %w", err)
		}
		signer = s
	}
	if keyring := a.cfg.Baseline.Keyring; keyring != "" {
		v, err := gpg.NewVerifierFromFile(keyring)
		if err != nil {
			return nil, fmt.Errorf("failed to load baseline keyring: %w", err)
		}
		verifier = v
	}
	detector.WithSigning(signer, verifier)

	return orchestrators.NewChecksumOrchestrator(detector, a.log()), nil
}

func newStoreProvider(cfg config.StoreConfig) (domaingateways.BaselineStoreProvider, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return redis.NewProvider(redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
	case config.BackendSQLite:
		return sqlite.NewProvider(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

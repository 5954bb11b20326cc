package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristalhq/base64"
	gojson "github.com/goccy/go-json"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/domain/interfaces/gateways"
)

// ErrBaselineSignature is returned when a stored baseline fails signature verification
var ErrBaselineSignature = errors.New("baseline signature verification failed")

// signatureSuffix is appended to the operation key to store its signature
const signatureSuffix = ".sig"

// ChangeDetector compares artifact checksums against the baseline stored
// for a business operation
type ChangeDetector struct {
	stores    gateways.BaselineStoreProvider
	generator gateways.ChecksumGenerator
	signer    gateways.BaselineSigner
	verifier  gateways.BaselineVerifier
	logger    interfaces.Logger
}

// NewChangeDetector creates a change detector without baseline signing
func NewChangeDetector(stores gateways.BaselineStoreProvider, generator gateways.ChecksumGenerator, logger interfaces.Logger) *ChangeDetector {
	return &ChangeDetector{stores: stores, generator: generator, logger: logger}
}

// WithSigning enables signing on save and verification on plan. Either may be nil.
func (d *ChangeDetector) WithSigning(signer gateways.BaselineSigner, verifier gateways.BaselineVerifier) *ChangeDetector {
	d.signer = signer
	d.verifier = verifier
	return d
}

// Plan reports what changed since the stored baseline. An absent baseline
// counts as empty, so every current path is reported.
func (d *ChangeDetector) Plan(ctx context.Context, operation string, inputs []string, mode entities.ChecksumMode) (*entities.PlanResult, error) {
	current, err := d.generator.Generate(inputs, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to compute checksums: %w", err)
	}

	store, err := d.stores.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline store: %w", err)
	}
	defer store.Close() //nolint:errcheck // Defer close on read path

	baseline, err := d.loadBaseline(ctx, store, operation)
	if err != nil {
		return nil, err
	}

	return compare(current, baseline, mode), nil
}

// Save computes checksums, stores them as the new baseline for the
// operation and returns the plan computed against the previous baseline.
// A previous baseline that fails signature verification is replaced and
// counts as empty. The signature is produced before anything is written and
// stored ahead of the blob.
func (d *ChangeDetector) Save(ctx context.Context, operation string, inputs []string, mode entities.ChecksumMode) (*entities.PlanResult, error) {
	current, err := d.generator.Generate(inputs, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to compute checksums: %w", err)
	}

	blob, err := EncodeBaseline(current)
	if err != nil {
		return nil, err
	}
	var sig string
	if d.signer != nil {
		if sig, err = d.signer.Sign(blob); err != nil {
			return nil, fmt.Errorf("failed to sign baseline: %w", err)
		}
	}

	store, err := d.stores.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline store: %w", err)
	}
	defer store.Close() //nolint:errcheck // Errors surface through Put

	baseline, err := d.loadBaseline(ctx, store, operation)
	if errors.Is(err, ErrBaselineSignature) {
		d.logger.Warn("replacing baseline that failed verification",
			interfaces.F("operation", operation),
			interfaces.F("error", err.Error()))
		baseline, err = entities.Checksums{}, nil
	}
	if err != nil {
		return nil, err
	}
	result := compare(current, baseline, mode)

	if d.signer != nil {
		if err := d.putSigned(ctx, store, operation, blob, sig); err != nil {
			return nil, err
		}
	} else if err := store.Put(ctx, operation, blob); err != nil {
		return nil, fmt.Errorf("failed to store baseline for %s: %w", operation, err)
	}

	d.logger.Info("baseline saved",
		interfaces.F("operation", operation),
		interfaces.F("mode", mode),
		interfaces.F("entries", len(current)))
	return result, nil
}

// putSigned writes the signature and then the blob. When the blob write
// fails the previous signature is put back so the stored pair stays consistent.
func (d *ChangeDetector) putSigned(ctx context.Context, store gateways.BaselineStore, operation, blob, sig string) error {
	sigKey := operation + signatureSuffix
	previous, hadPrevious, err := store.Get(ctx, sigKey)
	if err != nil {
		return fmt.Errorf("failed to read baseline signature for %s: %w", operation, err)
	}

	if err := store.Put(ctx, sigKey, sig); err != nil {
		return fmt.Errorf("failed to store baseline signature for %s: %w", operation, err)
	}
	if err := store.Put(ctx, operation, blob); err != nil {
		if hadPrevious {
			if rerr := store.Put(ctx, sigKey, previous); rerr != nil {
				d.logger.Error("failed to restore baseline signature",
					interfaces.F("operation", operation),
					interfaces.F("error", rerr.Error()))
			}
		}
		return fmt.Errorf("failed to store baseline for %s: %w", operation, err)
	}
	return nil
}

func (d *ChangeDetector) loadBaseline(ctx context.Context, store gateways.BaselineStore, operation string) (entities.Checksums, error) {
	blob, found, err := store.Get(ctx, operation)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline for %s: %w", operation, err)
	}
	if !found {
		d.logger.Info("no baseline stored", interfaces.F("operation", operation))
		return entities.Checksums{}, nil
	}

	if d.verifier != nil {
		sig, ok, err := store.Get(ctx, operation+signatureSuffix)
		if err != nil {
			return nil, fmt.Errorf("failed to read baseline signature for %s: %w", operation, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no signature stored for %s", ErrBaselineSignature, operation)
		}
		if err := d.verifier.Verify(blob, sig); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBaselineSignature, err)
		}
	}

	return DecodeBaseline(blob)
}

func compare(current, baseline entities.Checksums, mode entities.ChecksumMode) *entities.PlanResult {
	paths := current.ChangedSince(baseline)
	result := &entities.PlanResult{Mode: mode, Changed: len(paths) > 0}
	if mode == entities.ModeDetailed {
		result.Paths = paths
	}
	return result
}

// EncodeBaseline renders checksums as base64 of their JSON encoding
func EncodeBaseline(c entities.Checksums) (string, error) {
	data, err := gojson.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode baseline: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeBaseline parses a blob produced by EncodeBaseline
func DecodeBaseline(blob string) (entities.Checksums, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode baseline: %w", err)
	}
	c := entities.Checksums{}
	if err := gojson.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse baseline: %w", err)
	}
	return c, nil
}

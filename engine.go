// Package medicarerepricer is the public entry point to the Medicare
// claims repricing engine: construction from a reference data directory,
// and the read-through operations that price a claim, assign an MS-DRG,
// or query a single reference table.
package medicarerepricer

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/config"
	"github.com/iris-health/medicare-repricer/internal/grouper"
	"github.com/iris-health/medicare-repricer/internal/ipps"
	"github.com/iris-health/medicare-repricer/internal/logger"
	"github.com/iris-health/medicare-repricer/internal/pfs"
	"github.com/iris-health/medicare-repricer/internal/refdata"
	"github.com/iris-health/medicare-repricer/internal/repricer"
)

// Engine is the engine's public handle: a loaded reference Data Store plus
// the Orchestrator built over it, and a configured logger. One Engine may
// be shared by multiple goroutines pricing claims concurrently; nothing on
// it mutates after New returns.
type Engine struct {
	store        *refdata.Store
	orchestrator *repricer.Orchestrator
	log          *logrus.Logger
}

// New builds an Engine from configPath (a YAML config file, or "" to rely
// on environment variables and defaults — see internal/config).
func New(configPath string) (*Engine, error) {
	cfg, err := config.LoadEngineConfig(configPath)
	if err != nil {
		return nil, err
	}
	store, err := refdata.Load(cfg.DataDirectory, cfg.Scalars())
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:        store,
		orchestrator: repricer.New(store),
		log:          logger.Setup(cfg.LogLevel),
	}, nil
}

// NewFromStore builds an Engine directly over an already-loaded Store,
// bypassing config loading. Useful for tests and for hosts that assemble
// their own configuration layer.
func NewFromStore(store *refdata.Store, logLevel string) *Engine {
	return &Engine{
		store:        store,
		orchestrator: repricer.New(store),
		log:          logger.Setup(logLevel),
	}
}

// RepriceClaim prices one claim end to end, assigning it a trace ID for
// correlated logging.
func (e *Engine) RepriceClaim(c *claim.Claim) (*claim.RepricedClaim, error) {
	traceID := uuid.NewString()
	log := e.log.WithField("trace_id", traceID)
	if c != nil {
		log = log.WithField("claim_id", c.ClaimID)
	}
	log.Info("repricing claim")

	out, err := e.orchestrator.RepriceClaim(c)
	if err != nil {
		log.WithError(err).Warn("claim rejected")
		return nil, err
	}
	for _, line := range out.Lines {
		entry := logger.LineEntry(e.log, traceID, out.ClaimID, line.LineNumber).
			WithField("medicare_allowed", line.MedicareAllowed)
		if line.PFS != nil {
			entry = entry.WithFields(logrus.Fields{"procedure_code": line.ProcedureCode, "selected_facility": line.PFS.SelectedFacility})
		}
		if line.IPPS != nil {
			entry = entry.WithField("ms_drg", line.IPPS.MSDRG)
		}
		entry.Debug("priced line")
		for _, d := range line.Diagnostics.Errors {
			logger.LineEntry(e.log, traceID, out.ClaimID, line.LineNumber).Warn(d.Message)
		}
		for _, d := range line.Diagnostics.Notes {
			logger.DiagnosticEntry(e.log, traceID, string(d.Code), d.Message).Warn("diagnostic")
		}
	}
	return out, nil
}

// RepriceBatch prices many claims concurrently, bounded to the machine's
// available parallelism. See internal/repricer.Orchestrator.RepriceBatch.
func (e *Engine) RepriceBatch(ctx context.Context, claims []*claim.Claim) ([]repricer.BatchResult, error) {
	return e.orchestrator.RepriceBatch(ctx, claims)
}

// AssignDRG runs the MS-DRG Grouper directly, without claim-level pricing.
func (e *Engine) AssignDRG(in grouper.Input) grouper.Output {
	return e.orchestrator.AssignDRG(in)
}

// CalculatePFSAllowed runs the PFS Calculator directly for one line.
func (e *Engine) CalculatePFSAllowed(in pfs.Input) pfs.Result {
	return e.orchestrator.CalculatePFSAllowed(in)
}

// CalculateIPPSAllowed runs the IPPS Calculator directly for one line.
func (e *Engine) CalculateIPPSAllowed(in ipps.Input) ipps.Result {
	return e.orchestrator.CalculateIPPSAllowed(in)
}

// GetRVU is a read-through accessor over the Data Store's RVU table.
func (e *Engine) GetRVU(code, modifier string) (refdata.RVURecord, bool) {
	return e.store.GetRVU(code, modifier)
}

// GetGPCI is a read-through accessor over the Data Store's GPCI table.
func (e *Engine) GetGPCI(locality string) (refdata.GPCIRecord, bool) {
	return e.store.GetGPCI(locality)
}

// GetMSDRG is a read-through accessor over the Data Store's MS-DRG table.
func (e *Engine) GetMSDRG(drg string) (refdata.MSDRGRecord, bool) {
	return e.store.GetMSDRG(drg)
}

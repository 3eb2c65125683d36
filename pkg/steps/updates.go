package steps

import (
	"fmt"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// ResourceUpdate is the typed payload a step reports when it completes. Each
// step has exactly one update variant carrying exactly the fields that step
// may produce; the variant validates its payload at the point completion is
// reported, then writes it into the record's canonical shape.
type ResourceUpdate interface {
	Step() deployment.Step
	apply(*deployment.Record) error
}

// ContractsDeployed carries the addresses produced by contract deployment.
type ContractsDeployed struct {
	TokenAddress   string
	ProxyAddress   string
	VestingAddress string
}

func (ContractsDeployed) Step() deployment.Step { return deployment.StepContractsDeployed }

func (u ContractsDeployed) apply(rec *deployment.Record) error {
	if u.TokenAddress == "" || u.ProxyAddress == "" {
		return fmt.Errorf("contract deployment must report token and proxy addresses")
	}
	rec.Contracts = &deployment.ContractAddresses{
		TokenAddress:   u.TokenAddress,
		ProxyAddress:   u.ProxyAddress,
		VestingAddress: u.VestingAddress,
	}
	return nil
}

// DataDAORegistered carries the registration id assigned on-chain. A zero id
// is a legitimate value.
type DataDAORegistered struct {
	DLPID uint64
}

func (DataDAORegistered) Step() deployment.Step { return deployment.StepDataDAORegistered }

func (u DataDAORegistered) apply(rec *deployment.Record) error {
	id := u.DLPID
	rec.DLPID = &id
	return nil
}

// ProofConfigured carries the proof-of-contribution repository URL.
type ProofConfigured struct {
	RepoURL string
}

func (ProofConfigured) Step() deployment.Step { return deployment.StepProofConfigured }

func (u ProofConfigured) apply(rec *deployment.Record) error {
	if u.RepoURL == "" {
		return fmt.Errorf("proof configuration must report a repository URL")
	}
	rec.ProofRepo = u.RepoURL
	return nil
}

// ProofPublished carries the pinned proof artifact URL.
type ProofPublished struct {
	ProofURL string
}

func (ProofPublished) Step() deployment.Step { return deployment.StepProofPublished }

func (u ProofPublished) apply(rec *deployment.Record) error {
	if u.ProofURL == "" {
		return fmt.Errorf("proof publication must report the published artifact URL")
	}
	rec.ProofURL = u.ProofURL
	return nil
}

// RefinerConfigured carries the refiner repository URL and, when already
// pinned, the schema URL.
type RefinerConfigured struct {
	RepoURL   string
	SchemaURL string
}

func (RefinerConfigured) Step() deployment.Step { return deployment.StepRefinerConfigured }

func (u RefinerConfigured) apply(rec *deployment.Record) error {
	if u.RepoURL == "" {
		return fmt.Errorf("refiner configuration must report a repository URL")
	}
	rec.RefinerRepo = u.RepoURL
	rec.SchemaURL = u.SchemaURL
	return nil
}

// RefinerPublished carries the refiner id assigned at publication.
type RefinerPublished struct {
	RefinerID uint64
}

func (RefinerPublished) Step() deployment.Step { return deployment.StepRefinerPublished }

func (u RefinerPublished) apply(rec *deployment.Record) error {
	id := u.RefinerID
	rec.RefinerID = &id
	return nil
}

// UIConfigured carries the UI repository URL and optional OAuth credentials.
type UIConfigured struct {
	RepoURL            string
	GoogleClientID     string
	GoogleClientSecret string
}

func (UIConfigured) Step() deployment.Step { return deployment.StepUIConfigured }

func (u UIConfigured) apply(rec *deployment.Record) error {
	if u.RepoURL == "" {
		return fmt.Errorf("UI configuration must report a repository URL")
	}
	rec.UIRepo = u.RepoURL
	if u.GoogleClientID != "" {
		rec.GoogleClientID = u.GoogleClientID
	}
	if u.GoogleClientSecret != "" {
		rec.GoogleClientSecret = u.GoogleClientSecret
	}
	return nil
}

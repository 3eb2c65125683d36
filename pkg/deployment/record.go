// Package deployment defines the persisted deployment record for a daoforge
// project and the store that reads and writes it.
package deployment

// Step identifies one stage of the provisioning workflow. Step values are
// stable identifiers: they key both the completion map and the error log in
// the persisted document.
type Step string

const (
	StepContractsDeployed Step = "contractsDeployed"
	StepDataDAORegistered Step = "dataDAORegistered"
	StepProofConfigured   Step = "proofConfigured"
	StepProofPublished    Step = "proofPublished"
	StepRefinerConfigured Step = "refinerConfigured"
	StepRefinerPublished  Step = "refinerPublished"
	StepUIConfigured      Step = "uiConfigured"
)

// Order is the canonical step sequence. Resume behavior and status output
// both follow this ordering.
var Order = []Step{
	StepContractsDeployed,
	StepDataDAORegistered,
	StepProofConfigured,
	StepProofPublished,
	StepRefinerConfigured,
	StepRefinerPublished,
	StepUIConfigured,
}

// KnownStep reports whether s is one of the defined step identifiers.
func KnownStep(s Step) bool {
	for _, k := range Order {
		if k == s {
			return true
		}
	}
	return false
}

// StepState is the boolean completion map over all steps.
type StepState map[Step]bool

// ErrorEntry records the most recent failure of a step. Timestamp is RFC 3339.
type ErrorEntry struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Trace     string `json:"trace,omitempty"`
}

// ContractAddresses is the nested shape for recording deployed contract
// addresses. The legacy flat fields on Record remain readable; Normalize
// reconciles the two at the serialization boundary.
type ContractAddresses struct {
	TokenAddress   string `json:"tokenAddress,omitempty"`
	ProxyAddress   string `json:"proxyAddress,omitempty"`
	VestingAddress string `json:"vestingAddress,omitempty"`
}

// Record is the single persisted document describing one project's
// provisioning progress and acquired resource identifiers.
//
// Numeric registration ids are pointers so that a legitimate zero id is
// distinguishable from an unset field.
type Record struct {
	// Identity
	ProjectName string `json:"projectName,omitempty"`
	TokenName   string `json:"tokenName,omitempty"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`

	// Wallet credentials. PrivateKey is sensitive; it is persisted because
	// generated scripts need it, but it never appears in status output.
	Address    string `json:"address,omitempty"`
	PublicKey  string `json:"publicKey,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`

	// Legacy flat contract fields. Old documents carry these; new ones use
	// Contracts. Both are valid sources of truth on read.
	TokenAddress string `json:"tokenAddress,omitempty"`
	ProxyAddress string `json:"proxyAddress,omitempty"`
	DLPAddress   string `json:"dlpAddress,omitempty"`

	Contracts *ContractAddresses `json:"contracts,omitempty"`

	// Resources acquired from external actions.
	DLPID       *uint64 `json:"dlpId,omitempty"`
	RefinerID   *uint64 `json:"refinerId,omitempty"`
	ProofRepo   string  `json:"proofRepo,omitempty"`
	ProofURL    string  `json:"proofUrl,omitempty"`
	RefinerRepo string  `json:"refinerRepo,omitempty"`
	SchemaURL   string  `json:"schemaUrl,omitempty"`
	UIRepo      string  `json:"uiRepo,omitempty"`

	// Paired external-service credentials.
	PinataAPIKey       string `json:"pinataApiKey,omitempty"`
	PinataAPISecret    string `json:"pinataApiSecret,omitempty"`
	GoogleClientID     string `json:"googleClientId,omitempty"`
	GoogleClientSecret string `json:"googleClientSecret,omitempty"`

	State  StepState           `json:"state,omitempty"`
	Errors map[Step]ErrorEntry `json:"errors,omitempty"`
}

// NewRecord returns a fresh record with every step flag false.
func NewRecord(projectName, tokenName, tokenSymbol string) *Record {
	state := make(StepState, len(Order))
	for _, s := range Order {
		state[s] = false
	}
	return &Record{
		ProjectName: projectName,
		TokenName:   tokenName,
		TokenSymbol: tokenSymbol,
		State:       state,
	}
}

// Completed reports whether the given step flag is set.
func (r *Record) Completed(step Step) bool {
	return r.State[step]
}

// HasContractAddresses reports whether contract addresses are present in
// either the legacy flat shape or the nested shape. Readers must accept both.
func (r *Record) HasContractAddresses() bool {
	if r.TokenAddress != "" || r.ProxyAddress != "" || r.DLPAddress != "" {
		return true
	}
	if r.Contracts != nil {
		c := r.Contracts
		return c.TokenAddress != "" || c.ProxyAddress != "" || c.VestingAddress != ""
	}
	return false
}

// Normalize reconciles the legacy flat contract fields into the nested shape
// so internal logic only consults the canonical form. Legacy fields are left
// in place for old readers; they are never the target of new writes.
// Idempotent.
func (r *Record) Normalize() {
	if r.State == nil {
		r.State = make(StepState, len(Order))
	}
	if r.Contracts == nil && (r.TokenAddress != "" || r.ProxyAddress != "") {
		r.Contracts = &ContractAddresses{
			TokenAddress: r.TokenAddress,
			ProxyAddress: r.ProxyAddress,
		}
	}
}

// Reset clears the completion map, the error log, and every resource field,
// preserving identity and credential fields. This is the only sanctioned way
// to un-mark completed steps.
func (r *Record) Reset() {
	r.State = make(StepState, len(Order))
	for _, s := range Order {
		r.State[s] = false
	}
	r.Errors = nil
	r.TokenAddress = ""
	r.ProxyAddress = ""
	r.DLPAddress = ""
	r.Contracts = nil
	r.DLPID = nil
	r.RefinerID = nil
	r.ProofRepo = ""
	r.ProofURL = ""
	r.RefinerRepo = ""
	r.SchemaURL = ""
	r.UIRepo = ""
}

// Bindings flattens the record into a map for template substitution.
// Contract addresses come from the canonical nested shape when present,
// falling back to the legacy flat fields. Unset optional values are omitted
// so templates referencing them stay unresolved rather than rendering empty.
func (r *Record) Bindings() map[string]any {
	b := make(map[string]any)
	put := func(k, v string) {
		if v != "" {
			b[k] = v
		}
	}
	put("projectName", r.ProjectName)
	put("tokenName", r.TokenName)
	put("tokenSymbol", r.TokenSymbol)
	put("address", r.Address)
	put("publicKey", r.PublicKey)
	put("privateKey", r.PrivateKey)

	tokenAddr, proxyAddr, vestingAddr := r.TokenAddress, r.ProxyAddress, ""
	if r.Contracts != nil {
		if r.Contracts.TokenAddress != "" {
			tokenAddr = r.Contracts.TokenAddress
		}
		if r.Contracts.ProxyAddress != "" {
			proxyAddr = r.Contracts.ProxyAddress
		}
		vestingAddr = r.Contracts.VestingAddress
	}
	put("tokenAddress", tokenAddr)
	put("proxyAddress", proxyAddr)
	put("vestingAddress", vestingAddr)
	put("dlpAddress", r.DLPAddress)

	if r.DLPID != nil {
		b["dlpId"] = *r.DLPID
	}
	if r.RefinerID != nil {
		b["refinerId"] = *r.RefinerID
	}
	put("proofRepo", r.ProofRepo)
	put("proofUrl", r.ProofURL)
	put("refinerRepo", r.RefinerRepo)
	put("schemaUrl", r.SchemaURL)
	put("uiRepo", r.UIRepo)
	put("pinataApiKey", r.PinataAPIKey)
	put("pinataApiSecret", r.PinataAPISecret)
	put("googleClientId", r.GoogleClientID)
	put("googleClientSecret", r.GoogleClientSecret)
	return b
}

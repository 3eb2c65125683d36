package deployment

import "testing"

// TestNormalizeLiftsLegacyAddresses verifies the flat fields populate the
// nested shape once, leaving existing nested values alone.
func TestNormalizeLiftsLegacyAddresses(t *testing.T) {
	rec := &Record{TokenAddress: "0xAAA", ProxyAddress: "0xBBB"}
	rec.Normalize()
	if rec.Contracts == nil {
		t.Fatal("Contracts not synthesized from legacy fields")
	}
	if rec.Contracts.TokenAddress != "0xAAA" || rec.Contracts.ProxyAddress != "0xBBB" {
		t.Errorf("Contracts = %+v", rec.Contracts)
	}

	// Already-nested records are untouched.
	rec2 := &Record{
		TokenAddress: "0xOLD",
		Contracts:    &ContractAddresses{TokenAddress: "0xNEW"},
	}
	rec2.Normalize()
	if rec2.Contracts.TokenAddress != "0xNEW" {
		t.Errorf("Normalize overwrote nested shape: %+v", rec2.Contracts)
	}
}

// TestHasContractAddressesAcceptsEitherShape covers the legacy-OR-new read
// contract.
func TestHasContractAddressesAcceptsEitherShape(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want bool
	}{
		{"empty", Record{}, false},
		{"legacy dlpAddress only", Record{DLPAddress: "0xAAA"}, true},
		{"legacy tokenAddress only", Record{TokenAddress: "0xAAA"}, true},
		{"nested only", Record{Contracts: &ContractAddresses{ProxyAddress: "0xBBB"}}, true},
		{"nested empty struct", Record{Contracts: &ContractAddresses{}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.HasContractAddresses(); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// TestResetPreservesIdentityAndCredentials verifies reset clears progress and
// resources but keeps who the project is.
func TestResetPreservesIdentityAndCredentials(t *testing.T) {
	id := uint64(7)
	rec := NewRecord("my-dao", "MyToken", "MYT")
	rec.Address = "0xCAFE"
	rec.PrivateKey = "key"
	rec.Contracts = &ContractAddresses{TokenAddress: "0xAAA"}
	rec.DLPID = &id
	rec.ProofRepo = "https://github.com/me/proof"
	rec.State[StepContractsDeployed] = true
	rec.Errors = map[Step]ErrorEntry{StepContractsDeployed: {Message: "boom"}}

	rec.Reset()

	if rec.ProjectName != "my-dao" || rec.Address != "0xCAFE" || rec.PrivateKey != "key" {
		t.Error("reset dropped identity or credentials")
	}
	if rec.Contracts != nil || rec.DLPID != nil || rec.ProofRepo != "" {
		t.Error("reset left resource fields behind")
	}
	if rec.Errors != nil {
		t.Error("reset left the error log behind")
	}
	for _, s := range Order {
		if rec.Completed(s) {
			t.Errorf("step %s still complete after reset", s)
		}
	}
}

// TestBindingsPresence verifies flattening: set fields appear, unset fields
// are omitted, and a zero-valued id counts as present.
func TestBindingsPresence(t *testing.T) {
	zero := uint64(0)
	rec := &Record{
		ProjectName: "my-dao",
		TokenAddress: "0xAAA",
		Contracts:    &ContractAddresses{TokenAddress: "0xNEW", VestingAddress: "0xVVV"},
		DLPID:        &zero,
	}

	b := rec.Bindings()
	if b["tokenAddress"] != "0xNEW" {
		t.Errorf("tokenAddress = %v, want the canonical nested value", b["tokenAddress"])
	}
	if b["vestingAddress"] != "0xVVV" {
		t.Errorf("vestingAddress = %v", b["vestingAddress"])
	}
	if v, ok := b["dlpId"]; !ok || v != uint64(0) {
		t.Errorf("dlpId = %v (present=%v), want zero id present", v, ok)
	}
	if _, ok := b["refinerId"]; ok {
		t.Error("unset refinerId should be absent")
	}
	if _, ok := b["proofRepo"]; ok {
		t.Error("empty proofRepo should be absent")
	}
}

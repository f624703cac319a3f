package entity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Reference prefixes. AGENT- is the permanent wallet account ref an agent pays into;
// FUND- is the per-event dedup reference of a credited funding.
const (
	PrefixCheckout      = "SAUKI-"
	PrefixAgentPurchase = "AGT-"
	PrefixFunding       = "FUND-"
	PrefixAgentWallet   = "AGENT-"
)

// NewReference returns prefix followed by 32 upper-case hex characters of a random UUID
func NewReference(prefix string) string {
	id := uuid.New()
	return prefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}

// FundingReference derives the dedup reference for a provider funding event
func FundingReference(providerEventID string) string {
	return PrefixFunding + providerEventID
}

// AgentWalletReference is the tx_ref bound to an agent's permanent virtual account
func AgentWalletReference(agentID uint64) string {
	return PrefixAgentWallet + strconv.FormatUint(agentID, 10)
}

// ParseAgentWalletReference extracts the agent id from an AGENT-<id> reference
func ParseAgentWalletReference(reference string) (uint64, bool) {
	if !IsAgentWalletReference(reference) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(reference, PrefixAgentWallet), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// IsAgentWalletReference reports whether a payment reference targets an agent wallet
func IsAgentWalletReference(reference string) bool {
	return strings.HasPrefix(reference, PrefixAgentWallet)
}

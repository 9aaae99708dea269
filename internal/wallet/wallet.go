// Package wallet simulates the blockchain side of tokenization: contract
// addresses, mint transactions and creator wallet summaries. Addresses and
// hashes are derived deterministically from the content ID so repeated
// calls for the same content agree; no real chain is involved.
package wallet

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// Blockchain is the network label reported in wallet integrations.
	Blockchain = "Polygon Mumbai Testnet"
	// TokenStandard is the contract standard reported in integrations.
	TokenStandard = "ERC-1155"
)

// Integration ties a token allocation to its simulated on-chain state.
type Integration struct {
	ContentID             string                `json:"content_id"`
	CreatorAddress        string                `json:"creator_address"`
	WalletIntegration     ContractInfo          `json:"wallet_integration"`
	OwnershipDistribution OwnershipDistribution `json:"ownership_distribution"`
	TransactionHistory    []Transaction         `json:"transaction_history"`
}

// ContractInfo describes the simulated token contract.
type ContractInfo struct {
	Blockchain       string `json:"blockchain"`
	ContractAddress  string `json:"contract_address"`
	TokenStandard    string `json:"token_standard"`
	CreatedTimestamp int64  `json:"created_timestamp"`
}

// OwnershipDistribution splits token ownership between the creator and the
// public. The creator starts with everything.
type OwnershipDistribution struct {
	CreatorOwnership  float64 `json:"creator_ownership"`
	PublicOwnership   float64 `json:"public_ownership"`
	TotalTokensIssued int     `json:"total_tokens_issued"`
}

// Transaction is one entry of the simulated transaction history.
type Transaction struct {
	Type            string `json:"type"`
	Timestamp       int64  `json:"timestamp"`
	TokensCreated   int    `json:"tokens_created"`
	CreatorAddress  string `json:"creator_address"`
	TransactionHash string `json:"transaction_hash"`
	ContentCategory string `json:"content_category"`
}

// NewIntegration mints the simulated contract for a token allocation. The
// contract address is an MD5-derived hex address; the mint
// transaction hash is a SHA-256 over the content ID and mint time.
func NewIntegration(contentID, creatorAddress, category string, totalTokens int) Integration {
	if creatorAddress == "" {
		creatorAddress = "anonymous"
	}
	now := time.Now()

	return Integration{
		ContentID:      contentID,
		CreatorAddress: creatorAddress,
		WalletIntegration: ContractInfo{
			Blockchain:       Blockchain,
			ContractAddress:  ContractAddress(contentID),
			TokenStandard:    TokenStandard,
			CreatedTimestamp: now.Unix(),
		},
		OwnershipDistribution: OwnershipDistribution{
			CreatorOwnership:  100.0,
			PublicOwnership:   0.0,
			TotalTokensIssued: totalTokens,
		},
		TransactionHistory: []Transaction{
			{
				Type:            "token_creation",
				Timestamp:       now.Unix(),
				TokensCreated:   totalTokens,
				CreatorAddress:  creatorAddress,
				TransactionHash: transactionHash(contentID, now),
				ContentCategory: category,
			},
		},
	}
}

// ContractAddress derives the simulated contract address for a content ID:
// "0x" plus the hex of the ID's MD5. Shorter than a real EVM address, which
// is fine for a testnet simulation.
func ContractAddress(contentID string) string {
	sum := md5.Sum([]byte(contentID))
	return "0x" + hex.EncodeToString(sum[:])
}

func transactionHash(contentID string, at time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s_%d", contentID, at.UnixNano()))
	return "0x" + hex.EncodeToString(sum[:])
}

// Contents is a creator's wallet summary. Values stay at zero until real
// transactions exist.
type Contents struct {
	CreatorAddress     string          `json:"creator_address"`
	TotalContentPieces int             `json:"total_content_pieces"`
	TotalTokensOwned   int             `json:"total_tokens_owned"`
	TotalValueUSD      float64         `json:"total_value_usd"`
	ContentPortfolio   []PortfolioItem `json:"content_portfolio"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
	CreatedTimestamp   int64           `json:"wallet_created_timestamp"`
}

// PortfolioItem is one content piece in a wallet summary.
type PortfolioItem struct {
	ContentID           string  `json:"content_id"`
	Title               string  `json:"title"`
	Category            string  `json:"category"`
	TokensOwned         int     `json:"tokens_owned"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
	EstimatedValueUSD   float64 `json:"estimated_value_usd"`
}

// BuildContents assembles a wallet summary from a creator's portfolio.
func BuildContents(creatorAddress string, portfolio []PortfolioItem) Contents {
	totalTokens := 0
	for _, item := range portfolio {
		totalTokens += item.TokensOwned
	}

	return Contents{
		CreatorAddress:     creatorAddress,
		TotalContentPieces: len(portfolio),
		TotalTokensOwned:   totalTokens,
		TotalValueUSD:      0.0,
		ContentPortfolio:   portfolio,
		RecentTransactions: []Transaction{},
		CreatedTimestamp:   time.Now().Unix(),
	}
}

// Package model defines the domain types shared across the bot: market
// snapshots with best bid/ask for both contract sides, order intents, risk
// limits and execution results. Prices are integer cents (1-99); the two
// sides of a binary contract are complementary claims summing to 100.
package model

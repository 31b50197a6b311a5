// Package fgpt is the deterministic core of a conversational personal-finance
// assistant. It holds the money type and the pure computations that the
// assistant's specialists call as tools:
//
//   - Loan repayment ordering with the avalanche or snowball strategy.
//   - Inflation adjusted value of an amount after some years.
//   - Debt-to-income ratio with the usual 36% health threshold.
//   - Net worth from labelled assets and liabilities.
//   - Sentiment of news headlines, with a buy/avoid lean derived from it.
//
// None of these functions touch the transaction ledger (see package ledger)
// or the network (see packages market and search). They are the only place
// where numbers are computed; the agent layer merely extracts arguments from
// text and renders results.
package fgpt

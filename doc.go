// Package folio values a multi-account, multi-currency investment portfolio
// and recommends rebalancing trades against a target allocation.
//
// The core functionalities include:
//   - Domain Model: an in-memory snapshot of accounts, holdings and cash
//     balances as loaded from a portfolio source.
//   - Currency Normalization: conversion of every native-currency amount into
//     a single reporting currency through a rate table, producing exact
//     account and portfolio totals.
//   - Allocation & Drift: per-ticker fractional weights over the active
//     (non-skipped) portfolio value, and the halved L1 distance between the
//     current and target allocation vectors, expressed as a percentage.
//   - Rebalancing Plan: a deterministic list of BUY/SELL instructions derived
//     from allocation weight deltas.
//   - Connectors: capability interfaces for the portfolio source, the price
//     feed and the FX feed, with an Alpha Vantage adapter and a YAML file
//     source provided.
//
// This package serves as the foundational logic for the `folio` command-line
// tool.
package folio

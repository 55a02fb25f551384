// Package io reads and writes stock lists as JSON files.
//
// # Overview
//
// A stock list lets the heatmap be built offline, from a snapshot saved with
// [ExportJSON] or from a raw quote payload downloaded from the market-data
// API. Both shapes are accepted by [ReadJSON]:
//
//	[
//	  {"symbol": "AAPL", "name": "Apple Inc.", "price": 189.84,
//	   "changesPercentage": 1.23, "marketCap": 2950000000000},
//	  {"symbol": "SAP.DE", "sector": "Technology", "price": 172.1,
//	   "change_pct": -0.4, "market_cap": 201000000000}
//	]
//
// # Fields
//
// Required:
//   - symbol: ticker symbol
//   - marketCap or market_cap: positive market capitalisation
//
// Optional:
//   - name: display name (defaults to the symbol)
//   - sector: overrides the sector map passed to [ReadJSON]
//   - price, change: last price and absolute change
//   - changesPercentage or change_pct: daily change in percent
//
// Records follow the same rules as [market.FromQuotes]: entries without a
// positive market cap are dropped, duplicate symbols keep their first entry
// and the result is sorted by market cap, largest first.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the snake_case [market.Stock] form,
// which reads back identically.
package io

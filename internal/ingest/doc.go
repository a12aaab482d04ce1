// Package ingest reads sales line items from Excel workbooks and CSV files,
// cleans them into model.SaleRecord values and reports dataset statistics.
//
// Files must carry a header row naming the columns date, customer, item_name,
// unit, qty and total_price (case and surrounding spaces are ignored, spaces
// inside a name may be written as underscores). Extra columns are ignored.
package ingest

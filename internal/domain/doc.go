// Package domain contains the bang resolution engine and its configuration model.
//
// The domain is transport- and persistence-agnostic: it does not depend on storage
// backends, compression, net/http, or the filesystem. Infra/adapters map into/from these types.
//
// Resolution path (synchronous, allocation-light):
//
//	NavigationRequest -> ExtractQuery -> Tokenize -> LookupTable.Resolve -> BuildDestinations
package domain

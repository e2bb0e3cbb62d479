// Package brandkit assembles the multi-tenant product data platform:
// brand-scoped product catalogs behind an access decision pipeline,
// keyset pagination, guarded bulk operations, and CSV import/export.
//
// The packages under pkg/ are usable on their own; this root package
// offers a batteries-included composition driven by environment
// configuration:
//
//	app, err := brandkit.New(ctx, sessionIdentity)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	if err := app.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package brandkit

// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, admin role seeding
//	├── books/           # Book queries, search and favourites
//	├── bookshelves/     # Shelves and shelf membership
//	├── authors/         # Author enrichment records and the author listing
//	├── roles/           # Roles and permission sets
//	├── users/           # Users and role counts
//	├── positions/       # Saved reading positions
//	└── audit/           # Audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type implementing one of the
// repository interfaces in internal/usecases:
//
//	db, err := database.NewDatabase("./homebranch.db", "warn")
//
//	booksRepo := books.NewRepository(db.DB)
//	res := booksRepo.FindByID(ctx, id)
//	if res.IsFailure() {
//		return res
//	}
//
// # Results
//
// Repositories never return bare errors. Missing rows become the matching
// domain failure (for example entities.ErrBookNotFound) and any other
// gorm error becomes a result.Unexpected failure, see Failure.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the interface from internal/usecases
//  5. Add a compile-time check to internal/interfaces/checks.go
package database

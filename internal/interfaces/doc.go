// Package interfaces documents the extension points of the server and holds
// compile-time checks that every concrete implementation satisfies them.
//
// # Interface Categories
//
// ## Persistence
//
//   - BookRepository, BookShelfRepository, AuthorRepository,
//     RoleRepository, UserRepository, SavedPositionRepository
//     (internal/usecases/interfaces.go), implemented by the gorm
//     repositories under internal/database/...
//
// ## Enrichment
//
//   - MetadataGateway (internal/usecases/interfaces.go), implemented by
//     metadata.Gateway on top of the OpenLibrary client. Lookups never fail;
//     errors degrade to empty results.
//
// ## File Storage
//
//   - storage.Client (internal/storage/client.go), implemented by the local
//     filesystem and MinIO providers under internal/storage/providers.
//
// ## Audit and Background Work
//
//   - AuditLogger, ProvisionAuditor, AuditEventReader and AuditEventCleaner,
//     all implemented by audit.Service.
//   - TaskQueue, SummaryEnqueuer and AuditCleanupEnqueuer, implemented by
//     tasks.Client on top of backlite.
//
// # Adding a New Storage Provider
//
//  1. Create a package under internal/storage/providers implementing
//     storage.Client. Download must return storage.ErrNotFound for
//     missing keys.
//  2. Add a StorageProvider constant in internal/config and select it in
//     entrypoint.newStorage.
//  3. Add a compile-time check to checks.go.
package interfaces

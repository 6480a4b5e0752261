package entities

import "github.com/homebranch/server/internal/result"

// Domain-specific failure codes. Most areas reuse the generic codes from
// the result package.
const (
	CodeBookNotFound      = "BOOK_NOT_FOUND"
	CodeBookShelfNotFound = "BOOK_SHELF_NOT_FOUND"
	CodeBookFileNotFound  = "BOOK_FILE_NOT_FOUND"
)

var (
	ErrAuthorNotFound        = result.NewFailure(result.CodeNotFound, "Author not found")
	ErrBookNotFound          = result.NewFailure(CodeBookNotFound, "Book not found")
	ErrBookFileNotFound      = result.NewFailure(CodeBookFileNotFound, "Book file not found on server")
	ErrDeleteBookForbidden   = result.NewFailure(result.CodeForbidden, "You are not allowed to delete this book")
	ErrBookShelfNotFound     = result.NewFailure(CodeBookShelfNotFound, "Book shelf not found")
	ErrRoleNotFound          = result.NewFailure(result.CodeNotFound, "Role not found")
	ErrDuplicateRoleName     = result.NewFailure(result.CodeConflict, "A role with this name already exists")
	ErrRoleHasAssignedUsers  = result.NewFailure(result.CodeConflict, "Cannot delete a role that has assigned users")
	ErrInvalidRole           = result.NewFailure(result.CodeBadRequest, "Invalid role")
	ErrSavedPositionNotFound = result.NewFailure(result.CodeNotFound, "Saved position not found")
	ErrUserNotFound          = result.NewFailure(result.CodeNotFound, "User not found")
	ErrAccessDenied          = result.NewFailure(result.CodeForbidden, "Access denied")
	ErrInsufficientPerms     = result.NewFailure(result.CodeForbidden, "Insufficient permissions")
	ErrAccountRestricted     = result.NewFailure(result.CodeForbidden, "Account is restricted")
)

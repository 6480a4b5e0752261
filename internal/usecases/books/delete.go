package books

import (
	"context"
	"strings"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type DeleteBookRequest struct {
	ID                 string
	RequestingUserID   string
	RequestingUserRole string
	IPAddress          string
}

// DeleteBook removes a book. Only the uploader or an admin may delete a book
// that has a recorded uploader. The deleted book is returned so the caller
// can remove its stored files.
type DeleteBook struct {
	books usecases.BookRepository
	audit usecases.AuditLogger
}

func NewDeleteBook(books usecases.BookRepository, audit usecases.AuditLogger) *DeleteBook {
	return &DeleteBook{books: books, audit: audit}
}

func (uc *DeleteBook) Execute(ctx context.Context, req DeleteBookRequest) result.Result[*entities.Book] {
	found := uc.books.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	book := found.Value()
	isAdmin := strings.EqualFold(req.RequestingUserRole, entities.AdminRoleName)
	if !isAdmin && book.HasUploader() && !book.IsOwnedBy(req.RequestingUserID) {
		uc.record(req, entities.AuditStatusFailed, entities.ErrDeleteBookForbidden.Message())
		return result.Fail[*entities.Book](entities.ErrDeleteBookForbidden)
	}

	deleted := uc.books.Delete(ctx, req.ID)
	if deleted.IsSuccess() {
		uc.record(req, entities.AuditStatusSuccess, "")
	}
	return deleted
}

func (uc *DeleteBook) record(req DeleteBookRequest, status entities.AuditStatus, errMsg string) {
	id := req.ID
	usecases.Audit(uc.audit, &entities.AuditEvent{
		UserID:      req.RequestingUserID,
		EventType:   entities.AuditEventBook,
		Action:      "book_delete",
		Description: "Delete book " + id,
		EntityType:  "book",
		EntityID:    &id,
		IPAddress:   req.IPAddress,
		Status:      status,
		ErrorMsg:    errMsg,
	})
}

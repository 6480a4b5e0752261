package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/bookshelves"
)

// BookShelvesController handles book shelves and their membership.
type BookShelvesController struct {
	list       *bookshelves.GetBookShelves
	listByBook *bookshelves.GetBookShelvesByBook
	get        *bookshelves.GetBookShelfByID
	books      *bookshelves.GetBookShelfBooks
	create     *bookshelves.CreateBookShelf
	update     *bookshelves.UpdateBookShelf
	delete     *bookshelves.DeleteBookShelf
	addBook    *bookshelves.AddBookToBookShelf
	removeBook *bookshelves.RemoveBookFromBookShelf
}

func NewBookShelvesController(shelves usecases.BookShelfRepository, books usecases.BookRepository) *BookShelvesController {
	return &BookShelvesController{
		list:       bookshelves.NewGetBookShelves(shelves),
		listByBook: bookshelves.NewGetBookShelvesByBook(shelves),
		get:        bookshelves.NewGetBookShelfByID(shelves),
		books:      bookshelves.NewGetBookShelfBooks(shelves, books),
		create:     bookshelves.NewCreateBookShelf(shelves),
		update:     bookshelves.NewUpdateBookShelf(shelves),
		delete:     bookshelves.NewDeleteBookShelf(shelves),
		addBook:    bookshelves.NewAddBookToBookShelf(shelves, books),
		removeBook: bookshelves.NewRemoveBookFromBookShelf(shelves),
	}
}

// List handles GET /book-shelves. Only the caller's shelves are listed.
func (bc *BookShelvesController) List(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}
	respond.Result(c, bc.list.Execute(c.Request.Context(), bookshelves.GetBookShelvesRequest{
		Pagination: p,
		UserID:     auth.GetUserID(c),
	}))
}

// ListByBook handles GET /book-shelves/by-book/:bookId
func (bc *BookShelvesController) ListByBook(c *gin.Context) {
	respond.Result(c, bc.listByBook.Execute(c.Request.Context(), bookshelves.GetBookShelvesByBookRequest{BookID: c.Param("bookId")}))
}

// Get handles GET /book-shelves/:id
func (bc *BookShelvesController) Get(c *gin.Context) {
	respond.Result(c, bc.get.Execute(c.Request.Context(), bookshelves.BookShelfIDRequest{ID: c.Param("id")}))
}

// Books handles GET /book-shelves/:id/books
func (bc *BookShelvesController) Books(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}
	respond.Result(c, bc.books.Execute(c.Request.Context(), bookshelves.GetBookShelfBooksRequest{
		ID:         c.Param("id"),
		Pagination: p,
	}))
}

type createBookShelfBody struct {
	Title string `json:"title" binding:"required"`
}

// Create handles POST /book-shelves. The caller becomes the creator.
func (bc *BookShelvesController) Create(c *gin.Context) {
	var body createBookShelfBody
	if !bindJSON(c, &body) {
		return
	}
	req := bookshelves.CreateBookShelfRequest{Title: body.Title}
	if userID := auth.GetUserID(c); userID != "" {
		req.CreatedByUserID = &userID
	}
	respond.Result(c, bc.create.Execute(c.Request.Context(), req))
}

type updateBookShelfBody struct {
	Title *string `json:"title"`
}

// Update handles PUT /book-shelves/:id
func (bc *BookShelvesController) Update(c *gin.Context) {
	var body updateBookShelfBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, bc.update.Execute(c.Request.Context(), bookshelves.UpdateBookShelfRequest{
		ID:    c.Param("id"),
		Title: body.Title,
	}))
}

// Delete handles DELETE /book-shelves/:id
func (bc *BookShelvesController) Delete(c *gin.Context) {
	respond.Result(c, bc.delete.Execute(c.Request.Context(), bookshelves.BookShelfIDRequest{ID: c.Param("id")}))
}

type membershipBody struct {
	BookID string `json:"bookId" binding:"required"`
}

// AddBook handles PUT /book-shelves/:id/add-book
func (bc *BookShelvesController) AddBook(c *gin.Context) {
	var body membershipBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, bc.addBook.Execute(c.Request.Context(), bookshelves.MembershipRequest{
		BookShelfID: c.Param("id"),
		BookID:      body.BookID,
	}))
}

// RemoveBook handles PUT /book-shelves/:id/remove-book
func (bc *BookShelvesController) RemoveBook(c *gin.Context) {
	var body membershipBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, bc.removeBook.Execute(c.Request.Context(), bookshelves.MembershipRequest{
		BookShelfID: c.Param("id"),
		BookID:      body.BookID,
	}))
}

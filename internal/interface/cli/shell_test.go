package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

func newTestSession() *library.Session {
	return library.NewSession(memory.NewBookRepository(), memory.NewStudentRepository())
}

// run 把多行输入喂给shell,返回全部输出
func run(t *testing.T, session *library.Session, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, NewShell(session, in, &out).Run(context.Background()))
	return out.String()
}

func TestShell_Exit(t *testing.T) {
	out := run(t, newTestSession(), "9")
	assert.Contains(t, out, "===== Library Management System =====")
	assert.Contains(t, out, "Exiting...")
}

func TestShell_EOF(t *testing.T) {
	var out bytes.Buffer
	err := NewShell(newTestSession(), strings.NewReader(""), &out).Run(context.Background())
	assert.NoError(t, err)
}

func TestShell_InvalidOption(t *testing.T) {
	out := run(t, newTestSession(), "42", "exit")
	assert.Contains(t, out, "Invalid option. Try again.")
}

func TestShell_AddAndList(t *testing.T) {
	session := newTestSession()
	out := run(t, session,
		"1", "1", "Dune", "Frank Herbert", "SciFi", "4.5", "2",
		"add-book", "2", "Foundation", "Asimov", "SciFi", "4.8", "0",
		"2",
		"9",
	)

	assert.Equal(t, 2, strings.Count(out, "Book added successfully."))
	assert.Contains(t, out, "=== Available Books ===")
	assert.Contains(t, out, "[Book ID: 1]\nTitle: Dune\nAuthor: Frank Herbert\nGenre: SciFi\nRating: 4.5/5\nAvailable: 2\n")
	assert.NotContains(t, out, "[Book ID: 2]", "零册图书不在可借列表中")
}

func TestShell_RepromptOnBadNumber(t *testing.T) {
	session := newTestSession()
	out := run(t, session,
		"1", "abc", "7", "Emma", "Austen", "Classic", "high", "4", "1",
		"9",
	)

	assert.Contains(t, out, "Please enter a whole number.")
	assert.Contains(t, out, "Please enter a number.")
	assert.Contains(t, out, "Book added successfully.")

	b, err := session.GetBook(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4.0, b.Rating)
}

func TestShell_InvalidRating(t *testing.T) {
	out := run(t, newTestSession(), "1", "1", "T", "A", "G", "9", "1", "9")
	assert.Contains(t, out, "Rating must be between 0 and 5.")
	assert.NotContains(t, out, "Error:")
}

func TestShell_NegativeQuantity(t *testing.T) {
	out := run(t, newTestSession(), "1", "1", "T", "A", "G", "3", "-1", "9")
	assert.Contains(t, out, "Quantity cannot be negative.")
}

func TestShell_DuplicateID(t *testing.T) {
	session := library.NewSession(memory.NewBookRepository(), memory.NewStudentRepository(),
		library.WithStrictBookIDs(true), library.WithStrictStudentIDs(true))
	out := run(t, session,
		"1", "1", "Dune", "Herbert", "SciFi", "4.5", "1",
		"1", "1", "Other", "X", "Y", "3", "1",
		"4", "100", "Alice",
		"4", "100", "Bob",
		"9",
	)
	assert.Equal(t, 2, strings.Count(out, "ID already exists."))
	assert.NotContains(t, out, "Error:")
}

func TestShell_Search(t *testing.T) {
	session := newTestSession()
	out := run(t, session,
		"1", "1", "Dune", "Herbert", "SciFi", "4.5", "0",
		"3", "DUNE",
		"search-by-title", "rust",
		"9",
	)
	assert.Contains(t, out, "[Book ID: 1]")
	assert.Contains(t, out, "No books found matching the title.")
}

func TestShell_BorrowReturnHistory(t *testing.T) {
	session := newTestSession()
	out := run(t, session,
		"7",
		"1", "1", "Dune", "Herbert", "SciFi", "4.5", "1",
		"4", "100", "Alice",
		"5", "999",
		"5", "100", "404",
		"5", "100", "1",
		"5", "100", "1",
		"6", "999",
		"6", "100", "3",
		"6", "100", "1",
		"7",
		"9",
	)

	assert.Contains(t, out, "No borrow history available.")
	assert.Contains(t, out, "Student registered successfully.")
	assert.Contains(t, out, "Student not found. Please register first.")
	assert.Contains(t, out, "Invalid Book ID.")
	assert.Contains(t, out, "Book borrowed successfully!")
	assert.Contains(t, out, "Book not available right now.")
	assert.Contains(t, out, "Student not found.\n")
	assert.Contains(t, out, "This book wasn't borrowed by you.")
	assert.Contains(t, out, "Book returned successfully.")
	assert.Contains(t, out, "=== Borrow History (most recent first) ===")

	b, err := session.GetBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Quantity)
}

func TestShell_Recommend(t *testing.T) {
	session := newTestSession()
	out := run(t, session,
		"1", "1", "Dune", "Herbert", "SciFi", "4.5", "2",
		"1", "2", "Foundation", "Asimov", "SciFi", "4.8", "1",
		"1", "3", "Emma", "Austen", "Classic", "4", "1",
		"8", "1",
		"recommend", "3",
		"9",
	)

	assert.Contains(t, out, "Books similar by genre:\n\n[Book ID: 2]")
	assert.Contains(t, out, "No recommendations found.")
}

// Package cli 交互式命令行(菜单驱动)
//
// 命令既可以输入编号也可以输入名称:
//
//	1 add-book  2 list-available  3 search-by-title  4 register-student
//	5 borrow    6 return          7 view-history     8 recommend   9 exit
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// errExit 输入结束(EOF)
var errExit = errors.New("输入结束")

const menu = `
===== Library Management System =====
1. Add Book
2. Show All Books
3. Search Book by Title
4. Register Student
5. Borrow Book
6. Return Book
7. View Borrow History
8. Recommend Books
9. Exit
Enter your choice: `

// Shell 交互式命令行
type Shell struct {
	session *library.Session
	in      *bufio.Scanner
	out     io.Writer
}

// NewShell 创建命令行
func NewShell(session *library.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// command 一个菜单项
type command struct {
	number string
	name   string
	run    func(ctx context.Context) error
}

func (s *Shell) commands() []command {
	return []command{
		{"1", "add-book", s.addBook},
		{"2", "list-available", s.listAvailable},
		{"3", "search-by-title", s.searchByTitle},
		{"4", "register-student", s.registerStudent},
		{"5", "borrow", s.borrow},
		{"6", "return", s.returnBook},
		{"7", "view-history", s.viewHistory},
		{"8", "recommend", s.recommend},
	}
}

// Run 主循环,直到选择exit、输入结束或ctx取消
// 业务错误打印后回到菜单,只有读写失败才返回错误
func (s *Shell) Run(ctx context.Context) error {
	commands := s.commands()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.printf("%s", menu)
		choice, err := s.readLine()
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.ToLower(strings.TrimSpace(choice))
		if choice == "9" || choice == "exit" {
			s.printf("Exiting...\n")
			return nil
		}

		cmd, ok := lookup(commands, choice)
		if !ok {
			s.printf("Invalid option. Try again.\n")
			continue
		}

		err = cmd.run(ctx)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func lookup(commands []command, choice string) (command, bool) {
	for _, c := range commands {
		if c.number == choice || c.name == choice {
			return c, true
		}
	}
	return command{}, false
}

func (s *Shell) addBook(ctx context.Context) error {
	id, err := s.readInt("\nEnter Book ID: ")
	if err != nil {
		return err
	}
	title, err := s.prompt("Title: ")
	if err != nil {
		return err
	}
	author, err := s.prompt("Author: ")
	if err != nil {
		return err
	}
	genre, err := s.prompt("Genre: ")
	if err != nil {
		return err
	}
	rating, err := s.readFloat("Rating (out of 5): ")
	if err != nil {
		return err
	}
	quantity, err := s.readInt("Quantity: ")
	if err != nil {
		return err
	}

	_, err = s.session.AddBook(ctx, library.AddBookRequest{
		ID:       id,
		Title:    title,
		Author:   author,
		Genre:    genre,
		Rating:   rating,
		Quantity: quantity,
	})
	if err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Book added successfully.\n")
	return nil
}

func (s *Shell) listAvailable(ctx context.Context) error {
	books, err := s.session.ListAvailable(ctx)
	if err != nil {
		s.printError(err)
		return nil
	}

	s.printf("\n=== Available Books ===\n")
	for _, b := range books {
		s.displayBook(b)
	}
	return nil
}

func (s *Shell) searchByTitle(ctx context.Context) error {
	query, err := s.prompt("\nEnter title to search (case-insensitive substring search): ")
	if err != nil {
		return err
	}

	books, err := s.session.SearchByTitle(ctx, query)
	if err != nil {
		s.printError(err)
		return nil
	}
	if len(books) == 0 {
		s.printf("No books found matching the title.\n")
		return nil
	}
	for _, b := range books {
		s.displayBook(b)
	}
	return nil
}

func (s *Shell) registerStudent(ctx context.Context) error {
	id, err := s.readInt("\nEnter Student ID: ")
	if err != nil {
		return err
	}
	name, err := s.prompt("Enter Name: ")
	if err != nil {
		return err
	}

	if _, err := s.session.RegisterStudent(ctx, library.RegisterStudentRequest{ID: id, Name: name}); err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Student registered successfully.\n")
	return nil
}

func (s *Shell) borrow(ctx context.Context) error {
	studentID, err := s.readInt("\nEnter your Student ID: ")
	if err != nil {
		return err
	}
	// 先确认学生存在再询问图书
	if _, err := s.session.GetStudent(ctx, studentID); err != nil {
		s.printError(err)
		return nil
	}
	bookID, err := s.readInt("Enter Book ID to borrow: ")
	if err != nil {
		return err
	}

	if err := s.session.Borrow(ctx, studentID, bookID); err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Book borrowed successfully!\n")
	return nil
}

func (s *Shell) returnBook(ctx context.Context) error {
	studentID, err := s.readInt("\nEnter your Student ID: ")
	if err != nil {
		return err
	}
	if _, err := s.session.GetStudent(ctx, studentID); err != nil {
		s.printf("Student not found.\n")
		return nil
	}
	bookID, err := s.readInt("Enter Book ID to return: ")
	if err != nil {
		return err
	}

	if err := s.session.Return(ctx, studentID, bookID); err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Book returned successfully.\n")
	return nil
}

func (s *Shell) viewHistory(ctx context.Context) error {
	entries, err := s.session.Events(ctx)
	if err != nil {
		s.printError(err)
		return nil
	}
	if len(entries) == 0 {
		s.printf("\nNo borrow history available.\n")
		return nil
	}

	books, err := s.session.History(ctx)
	if err != nil {
		s.printError(err)
		return nil
	}

	s.printf("\n=== Borrow History (most recent first) ===\n")
	for _, b := range books {
		s.displayBook(b)
	}
	return nil
}

func (s *Shell) recommend(ctx context.Context) error {
	bookID, err := s.readInt("\nEnter Book ID to get recommendations: ")
	if err != nil {
		return err
	}

	books, err := s.session.Recommend(ctx, bookID)
	if err != nil {
		s.printError(err)
		return nil
	}

	s.printf("\nBooks similar by genre:\n")
	for _, b := range books {
		s.displayBook(b)
	}
	return nil
}

// displayBook 打印单本图书
func (s *Shell) displayBook(b *library.BookDTO) {
	s.printf("\n[Book ID: %d]\nTitle: %s\nAuthor: %s\nGenre: %s\nRating: %s/5\nAvailable: %d\n",
		b.ID, b.Title, b.Author, b.Genre, strconv.FormatFloat(b.Rating, 'g', -1, 64), b.Quantity)
}

// printError 业务错误转为提示文字
func (s *Shell) printError(err error) {
	switch {
	case errors.Is(err, book.ErrInvalidRating):
		s.printf("Rating must be between 0 and 5.\n")
		return
	case errors.Is(err, book.ErrInvalidQuantity):
		s.printf("Quantity cannot be negative.\n")
		return
	}

	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeStudentNotFound:
		s.printf("Student not found. Please register first.\n")
	case apperrors.ErrCodeBookNotFound:
		s.printf("Invalid Book ID.\n")
	case apperrors.ErrCodeUnavailable:
		s.printf("Book not available right now.\n")
	case apperrors.ErrCodeNotBorrowed:
		s.printf("This book wasn't borrowed by you.\n")
	case apperrors.ErrCodeNotFound:
		s.printf("No recommendations found.\n")
	case apperrors.ErrCodeDuplicateEntry:
		s.printf("ID already exists.\n")
	case apperrors.ErrCodeInvalidParams:
		s.printf("Invalid input.\n")
	default:
		s.printf("Error: %s\n", apperrors.GetAppError(err).Message)
	}
}

// readLine 读取一行,EOF返回errExit
func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errExit
	}
	return s.in.Text(), nil
}

func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readInt 读取整数,格式错误时重新提示
func (s *Shell) readInt(label string) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.printf("Please enter a whole number.\n")
	}
}

// readFloat 读取小数,格式错误时重新提示
func (s *Shell) readFloat(label string) (float64, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return f, nil
		}
		s.printf("Please enter a number.\n")
	}
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

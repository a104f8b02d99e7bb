package models

import "time"

// BorrowingStatus is stored as text in the status column.
type BorrowingStatus string

const (
	StatusReserved BorrowingStatus = "RESERVED"
	StatusBorrowed BorrowingStatus = "BORROWED"
	StatusReturned BorrowingStatus = "RETURNED"
	StatusOverdue  BorrowingStatus = "OVERDUE"
)

// ActiveStatuses are the non-terminal states that block a second borrowing of
// the same book by the same user.
var ActiveStatuses = []BorrowingStatus{StatusReserved, StatusBorrowed}

// Borrowing links a user to a borrowed book. The row is the single owner of
// the relation: a user's borrowings are always derived by query. The partial
// unique index makes the store reject a second active borrowing of the same
// book by the same user, regardless of interleaving.
type Borrowing struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string          `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_borrowing,where:status IN ('RESERVED','BORROWED')" json:"user_id"`
	BookID     int64           `gorm:"not null;index;uniqueIndex:uniq_active_borrowing" json:"book_id"`
	Status     BorrowingStatus `gorm:"size:20;not null" json:"status"`
	BorrowDate time.Time       `gorm:"column:borrow_date;not null" json:"borrowDate"`
	DueDate    time.Time       `gorm:"column:due_date;not null" json:"dueDate"`
	ReturnDate *time.Time      `gorm:"column:return_date" json:"returnDate,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

func (Borrowing) TableName() string {
	return "borrowings"
}

// IsActive reports whether the borrowing still holds a copy.
func (b *Borrowing) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

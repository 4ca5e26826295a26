package tables

import (
	"time"
)

// UserTable represents the users table
type UserTable struct {
	ID          int       `db:"id,omitempty"  fiql:"id,db:id"`
	FirstName   string    `db:"f_name"        fiql:"f_name,db:f_name"`
	LastName    string    `db:"l_name"        fiql:"l_name,db:l_name"`
	Email       string    `db:"email_id"      fiql:"email_id,db:email_id"`
	PhoneNumber string    `db:"phone_number"  fiql:"phone_number,db:phone_number"`
	Address     string    `db:"address"`
	CreatedDate time.Time `db:"created_date"  fiql:"created_date,db:created_date"`
}

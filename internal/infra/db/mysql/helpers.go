package mysql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
)

// ER_DUP_ENTRY
const errDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

// statusOrPending returns pending when the input is empty/whitespace
func statusOrPending(s domain.Status) domain.Status {
	if strings.TrimSpace(string(s)) == "" {
		return domain.StatusPending
	}
	return s
}

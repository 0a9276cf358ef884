package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// PromptForAccount asks for the fields of a new account. An empty type
// means a Google account; an empty data set line means no data set.
func PromptForAccount(in *bufio.Scanner, out io.Writer) (models.AccountWithDataSet, bool) {
	fmt.Fprint(out, "Enter account name: ")
	if !in.Scan() {
		return models.AccountWithDataSet{}, false
	}
	name := strings.TrimSpace(in.Text())
	if name == "" {
		return models.AccountWithDataSet{}, false
	}

	fmt.Fprintf(out, "Enter account type [%s]: ", models.GoogleAccountType)
	in.Scan()
	accountType := strings.TrimSpace(in.Text())
	if accountType == "" {
		accountType = models.GoogleAccountType
	}

	account := models.NewAccountWithDataSet(name, accountType)
	fmt.Fprint(out, "Enter data set (leave empty for none): ")
	in.Scan()
	if ds := strings.TrimSpace(in.Text()); ds != "" {
		account = account.WithDataSet(ds)
	}
	return account, true
}

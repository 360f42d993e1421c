package issue

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowboard/flowboard/internal/testutil"
	"github.com/flowboard/flowboard/internal/testutil/clitest"
)

func TestCreateIssue_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	testutil.SeedProject(t, db, "PROJ", "Test Project", 5)

	t.Run("Creates issue with generated key", func(t *testing.T) {
		cmd := CreateCmd()

		output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{
			"--project", "PROJ",
			"--summary", "Fix login flow",
			"--reporter", "alice",
		})

		assert.NoError(t, err)
		assert.Contains(t, output, "Created issue PROJ-001: Fix login flow")

		var status string
		err = db.QueryRowContext(context.Background(),
			`SELECT status FROM issues WHERE key = 'PROJ-001'`,
		).Scan(&status)
		assert.NoError(t, err, "Issue should exist in database")
		assert.Equal(t, "open", status, "New issues always start open")
	})

	t.Run("Keys are sequential per project", func(t *testing.T) {
		for i := 2; i <= 3; i++ {
			cmd := CreateCmd()

			output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{
				"--project", "PROJ",
				"--summary", fmt.Sprintf("Task %d", i),
				"--reporter", "alice",
			})

			assert.NoError(t, err)
			assert.Contains(t, output, fmt.Sprintf("PROJ-%03d", i))
		}
	})

	t.Run("Quiet mode returns only the ID", func(t *testing.T) {
		cmd := CreateCmd()

		output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{
			"--project", "PROJ",
			"--summary", "Quiet issue",
			"--reporter", "bob",
			"--quiet",
		})

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d+$`), strings.TrimSpace(output))
	})

	t.Run("Missing summary flag fails", func(t *testing.T) {
		cmd := CreateCmd()

		_, err := clitest.ExecuteCLICommand(t, app, cmd, []string{
			"--project", "PROJ",
			"--reporter", "alice",
		})
		assert.Error(t, err)
	})
}

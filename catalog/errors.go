package catalog

import "fmt"

type (
	UserNotFound struct {
		Ref string
	}

	CategoryNotFound struct {
		ID string
	}

	QuestionNotFound struct {
		ID string
	}

	UsernameTaken struct {
		Username string
	}
)

func (u UserNotFound) Error() string {
	return fmt.Sprintf("user %v not found", u.Ref)
}

func (c CategoryNotFound) Error() string {
	return fmt.Sprintf("category %v not found", c.ID)
}

func (q QuestionNotFound) Error() string {
	return fmt.Sprintf("question %v not found", q.ID)
}

func (u UsernameTaken) Error() string {
	return fmt.Sprintf("username %v is already taken", u.Username)
}

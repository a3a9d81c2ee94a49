package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
)

type Service interface {
	// Monitor runs one news-scan pass for the user and persists whatever
	// topics the reply yields. The action distinguishes user-triggered runs
	// from scheduled ones in the usage meter.
	Monitor(ctx context.Context, user *authdomain.User, action usagedomain.Action) ([]topicdomain.Topic, error)
	// Brainstorm drafts post text for one of the user's topics. The reply is
	// returned verbatim.
	Brainstorm(ctx context.Context, user *authdomain.User, topicID snowflake.ID, steering string) (string, error)
}

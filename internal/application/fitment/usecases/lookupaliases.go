package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// MaxAliasTokens bounds the distinct words of one lookup; each word binds two query arguments.
const MaxAliasTokens = 200

type LookupAliasesUseCase struct {
	repo   fitment.Repository
	logger logger.Interface
}

func NewLookupAliasesUseCase(repo fitment.Repository, logger logger.Interface) *LookupAliasesUseCase {
	return &LookupAliasesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute finds brand aliases whose alias text or canonical value equals a word of text.
func (uc *LookupAliasesUseCase) Execute(ctx context.Context, text string) *fitment.Table {
	if strings.TrimSpace(text) == "" {
		return fitment.MessageTable(MsgEnterAliasText)
	}

	tokens := fitment.Tokenize(text)
	if len(tokens) == 0 {
		return fitment.MessageTable(MsgNoTokens)
	}
	if len(tokens) > MaxAliasTokens {
		return fitment.ErrorText(fmt.Sprintf(MsgTooManyTokens, len(tokens), MaxAliasTokens))
	}

	table, err := uc.repo.LookupAliases(ctx, tokens)
	if err != nil {
		uc.logger.Errorw("alias lookup from text failed", "tokens", len(tokens), "error", err)
		return fitment.ErrorTable(err)
	}
	if table.IsEmpty() {
		return fitment.MessageTable(MsgNoAliasesForTokens)
	}
	return table
}

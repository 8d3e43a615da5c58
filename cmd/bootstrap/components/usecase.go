package components

import (
	"marketplace-api/internal/usecase"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewOfferCommands,
		commands.NewOrderCommands,
		commands.NewReviewCommands,
		commands.NewProfileCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOfferQueries,
		queries.NewOrderQueries,
		queries.NewReviewQueries,
		queries.NewProfileQueries,
		queries.NewBaseInfoQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

package models

// Strategy names one of the four recommendation categories the backend
// serves. Each category is fetched independently and replaced wholesale.
type Strategy string

const (
	StrategyPersonalized Strategy = "personalized"
	StrategyByGenre      Strategy = "by-genre"
	StrategyByRating     Strategy = "by-rating"
	StrategySimilarUsers Strategy = "similar-users"
)

func Strategies() []Strategy {
	return []Strategy{StrategyPersonalized, StrategyByGenre, StrategyByRating, StrategySimilarUsers}
}

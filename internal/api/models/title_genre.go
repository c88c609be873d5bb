package models

// explicit join model so the seeding tool can insert rows from genre_title.csv.
// The composite key mirrors the join table the Title association migrates.
type TitleGenre struct {
	TitleID int64 `json:"title_id" gorm:"primaryKey"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}

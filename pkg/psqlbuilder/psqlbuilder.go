package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel statement builder с постгресовыми $N плейсхолдерами
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select возвращает SELECT builder
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert возвращает INSERT builder
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update возвращает UPDATE builder
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete возвращает DELETE builder
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}

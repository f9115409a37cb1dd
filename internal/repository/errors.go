package repository

import "errors"

// 行が無いことを表す共通エラー（gorm.ErrRecordNotFoundはinfra側で変換する）
var ErrNotFound = errors.New("not found")

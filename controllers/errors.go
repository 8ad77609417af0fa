package controllers

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrMenuNotFound  = errors.New("menu item not found")
)

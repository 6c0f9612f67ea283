package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status: query.Get("status"),
	}

	if userID := query.Get("userId"); userID != "" {
		req.UserID = &userID
	}
	if lotID := query.Get("lotId"); lotID != "" {
		req.LotID = &lotID
	}

	// from/to - границы по дате бронирования, включительно
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid limit value: %w", err)
		}
		req.Limit = limit
	}

	if includeStr := query.Get("includeUserDetails"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeUserDetails value: %w", err)
		}
		req.IncludeUserDetails = include
	}

	return req, nil
}

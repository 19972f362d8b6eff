package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// TransactionFilter defines criteria for filtering transactions
type TransactionFilter struct {
	UserID    *uint
	DealerID  *uint
	Type      *models.TransactionType
	Status    *models.TransactionStatus
	StartTime *time.Time
	EndTime   *time.Time
	MinAmount *int
	MaxAmount *int
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of transactions with filtering
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := database.DB.Model(&models.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DealerID != nil {
		query = query.Where("dealer_id = ?", *filter.DealerID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc, id desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func FindTransactionByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := database.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

var exportHeader = []string{
	"ID", "Created At", "Updated At", "User ID", "Dealer ID", "Reward ID",
	"Type", "Status", "Amount", "Description",
}

func exportRow(t models.Transaction) []string {
	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
		strconv.FormatUint(uint64(t.UserID), 10),
		optionalID(t.DealerID),
		optionalID(t.RewardID),
		string(t.Type),
		string(t.Status),
		strconv.Itoa(t.Amount),
		t.Description,
	}
}

func optionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// GenerateTransactionCSV generates a CSV file content for transactions
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		if err := w.Write(exportRow(t)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

const xlsxSheet = "Transactions"

// GenerateTransactionXLSX renders the same columns as the CSV export into a
// single-sheet workbook.
func GenerateTransactionXLSX(transactions []models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	if err := writeXLSXRow(f, 1, exportHeader); err != nil {
		return nil, err
	}
	for i, t := range transactions {
		if err := writeXLSXRow(f, i+2, exportRow(t)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/batch", OptionsTransactionBatch)
		r.POST("/batch", CreateTransactionBatch)
		r.OPTIONS("/drafts", OptionsTransactionDrafts)
		r.POST("/drafts", CreateTransactionDrafts)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PUT("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/batch [options]
func OptionsTransactionBatch(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/drafts [options]
func OptionsTransactionDrafts(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{}, httputil.OptionsGetPutDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/transactions [options]
func OptionsAccountTransactions(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{}, httputil.OptionsGet)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/register [options]
func OptionsAccountRegister(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{}, httputil.OptionsGet)
}

// transactionKeys returns the cache keys that change when the transactions
// are written.
func transactionKeys(transactions ...models.Transaction) [][]string {
	keys := [][]string{notify.CategoryList()}

	accounts := make(map[uuid.UUID]bool)
	categories := make(map[uuid.UUID]bool)
	for _, t := range transactions {
		if !accounts[t.AccountID] {
			accounts[t.AccountID] = true
			keys = append(keys, notify.AccountTransactions(t.AccountID))
		}

		for _, s := range t.Splits {
			if categories[s.CategoryID] {
				continue
			}
			categories[s.CategoryID] = true
			keys = append(keys, notify.Category(s.CategoryID), notify.CategoryTransactions(s.CategoryID))
		}
	}

	return keys
}

// @Summary		Create transaction
// @Description	Creates a transaction. The splits must add up to the amount.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var data TransactionEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.CreateTransaction(models.DB, data.transaction(), "")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), transactionKeys(transaction)...)

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &apiResource})
}

// @Summary		Create transactions
// @Description	Creates all transactions or none of them
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201				{object}	TransactionListResponse
// @Failure		400				{object}	TransactionListResponse
// @Failure		404				{object}	TransactionListResponse
// @Failure		500				{object}	TransactionListResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions/batch [post]
func CreateTransactionBatch(c *gin.Context) {
	var editables []TransactionEditable
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	if len(editables) == 0 {
		e := errBatchEmpty.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &e,
		})
		return
	}

	txs := make([]ledger.Transaction, 0, len(editables))
	for _, editable := range editables {
		txs = append(txs, editable.transaction())
	}

	transactions, err := models.CreateTransactions(models.DB, txs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), transactionKeys(transactions...)...)

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(c, t))
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Data: data})
}

// @Summary		Create transactions from drafts
// @Description	Validates drafts, e.g. from a statement import, and creates a transaction for each valid one.
// @Description	Drafts without a category get one from the first matching match rule.
// @Description	Drafts that have been imported before are skipped.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201		{object}	DraftCreateResponse
// @Failure		400		{object}	DraftCreateResponse
// @Failure		404		{object}	DraftCreateResponse
// @Failure		500		{object}	DraftCreateResponse
// @Param			drafts	body		[]DraftEditable	true	"Drafts"
// @Router			/v1/transactions/drafts [post]
func CreateTransactionDrafts(c *gin.Context) {
	var editables []DraftEditable
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DraftCreateResponse{
			Error: &e,
		})
		return
	}

	drafts := make([]ledger.Draft, 0, len(editables))
	for _, editable := range editables {
		drafts = append(drafts, editable.draft())
	}

	createDrafts(c, drafts)
}

// createDrafts applies the match rules to the drafts, skips drafts that
// have been imported before and creates a transaction for every valid
// draft. It writes the response.
func createDrafts(c *gin.Context, drafts []ledger.Draft) {
	rules, err := models.LedgerMatchRules(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DraftCreateResponse{
			Error: &e,
		})
		return
	}
	applied := ledger.ApplyRules(drafts, rules)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DraftCreateResponse{}

	var created []models.Transaction
	for i, draft := range drafts {
		var ruleID *uuid.UUID
		if applied[i] != uuid.Nil {
			ruleID = &applied[i]
		}

		hash := ledger.ImportHash(draft)
		exists, err := models.ImportHashExists(models.DB, hash)
		if err != nil {
			status = r.appendError(err, ruleID, status)
			continue
		}

		if exists {
			r.Data = append(r.Data, DraftResponse{RuleID: ruleID, Duplicate: true})
			continue
		}

		tx, err := draft.Normalize()
		if err != nil {
			status = r.appendError(err, ruleID, status)
			continue
		}

		// The payee is only created together with the transaction
		var transaction models.Transaction
		err = models.DB.Transaction(func(db *gorm.DB) error {
			if tx.PayeeID == uuid.Nil && draft.PayeeName != "" {
				payee, err := models.PayeeByName(db, draft.PayeeName)
				if err != nil {
					return err
				}
				tx.PayeeID = payee.ID
			}

			t, err := models.CreateTransaction(db, tx, hash)
			transaction = t
			return err
		})
		if err != nil {
			status = r.appendError(err, ruleID, status)
			continue
		}
		created = append(created, transaction)

		apiResource := newTransaction(c, transaction)
		r.Data = append(r.Data, DraftResponse{Data: &apiResource, RuleID: ruleID})
	}

	if len(created) > 0 {
		keys := append(transactionKeys(created...), notify.PayeeList())
		notify.Emit(c.Request.Context(), keys...)
	}

	c.JSON(status, r)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.Transaction
	err = models.PreloadSplits(models.DB).First(&transaction, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Update transaction
// @Description	Replaces a transaction. The splits in the request replace all existing splits.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [put]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var previous models.Transaction
	err = models.PreloadSplits(models.DB).First(&previous, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.ReplaceTransaction(models.DB, previous.ID, data.transaction())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), transactionKeys(previous, transaction)...)

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction with all of its splits
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.PreloadSplits(models.DB).First(&transaction, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	notify.Emit(c.Request.Context(), transactionKeys(transaction)...)

	c.JSON(http.StatusNoContent, nil)
}

// findTransactions returns a page of the transactions in scope, filtered
// by the query parameters, with their splits.
func findTransactions(c *gin.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Transaction, *Pagination, error) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		return nil, nil, err
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	var transactions []models.Transaction
	err := models.PreloadSplits(models.DB).
		Scopes(scope, filter.scope).
		Order("transactions.date DESC, transactions.created_at DESC").
		Offset(int(filter.Offset)).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, nil, err
	}

	var count int64
	err = models.DB.Model(&models.Transaction{}).Scopes(scope, filter.scope).Count(&count).Error
	if err != nil {
		return nil, nil, err
	}

	return transactions, &Pagination{
		Count:  len(transactions),
		Total:  count,
		Offset: filter.Offset,
		Limit:  limit,
	}, nil
}

// @Summary		Get account transactions
// @Description	Returns the transactions of an account, newest first
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	TransactionListResponse
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			start	query		string	false	"First month to include, in YYYY-MM-01 format"
// @Param			end		query		string	false	"Last month to include, in YYYY-MM-01 format"
// @Param			search	query		string	false	"Search for this text in the memo"
// @Param			offset	query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/accounts/{id}/transactions [get]
func GetAccountTransactions(c *gin.Context) {
	account, err := fromURI[models.Account](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	transactions, pagination, err := findTransactions(c, func(db *gorm.DB) *gorm.DB {
		return db.Where(&models.Transaction{AccountID: account.ID})
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(c, t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data, Pagination: pagination})
}

// @Summary		Get account register
// @Description	Returns the transactions of an account as register rows. Transactions with more than one split
// @Description	are a parent row followed by one row per split.
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	RegisterResponse
// @Failure		400		{object}	RegisterResponse
// @Failure		404		{object}	RegisterResponse
// @Failure		500		{object}	RegisterResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			start	query		string	false	"First month to include, in YYYY-MM-01 format"
// @Param			end		query		string	false	"Last month to include, in YYYY-MM-01 format"
// @Param			search	query		string	false	"Search for this text in the memo"
// @Param			offset	query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/accounts/{id}/register [get]
func GetAccountRegister(c *gin.Context) {
	account, err := fromURI[models.Account](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RegisterResponse{
			Error: &e,
		})
		return
	}

	transactions, pagination, err := findTransactions(c, func(db *gorm.DB) *gorm.DB {
		return db.Where(&models.Transaction{AccountID: account.ID})
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RegisterResponse{
			Error: &e,
		})
		return
	}

	rows := []ledger.Row{}
	for _, t := range transactions {
		rows = append(rows, ledger.Expand(t.Ledger())...)
	}

	c.JSON(http.StatusOK, RegisterResponse{Data: rows, Pagination: pagination})
}

// @Summary		Get category transactions
// @Description	Returns the transactions with at least one split in the category, newest first
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	TransactionListResponse
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			start	query		string	false	"First month to include, in YYYY-MM-01 format"
// @Param			end		query		string	false	"Last month to include, in YYYY-MM-01 format"
// @Param			search	query		string	false	"Search for this text in the memo"
// @Param			offset	query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/categories/{id}/transactions [get]
func GetCategoryTransactions(c *gin.Context) {
	category, err := fromURI[models.Category](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	transactions, pagination, err := findTransactions(c, func(db *gorm.DB) *gorm.DB {
		splits := models.DB.Model(&models.Split{}).Select("transaction_id").Where("category_id = ?", category.ID)
		return db.Where("transactions.id IN (?)", splits)
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(c, t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data, Pagination: pagination})
}

package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName    = "payments"
	defaultTransitionsTableName = "payment_transitions"

	paymentsProjectIDIndex         = "project_id-index"
	paymentsGatewayOrderRefIndex   = "gateway_order_ref-index"
	paymentsGatewayPaymentRefIndex = "gateway_payment_ref-index"
	paymentsStateIndex             = "state-index"
	paymentsCompanyIDIndex         = "company_id-index"
	paymentsStudentIDIndex         = "student_id-index"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	ProjectID         string `dynamodbav:"project_id"`
	CompanyID         string `dynamodbav:"company_id"`
	StudentID         string `dynamodbav:"student_id"`
	Amount            int64  `dynamodbav:"amount"`
	PlatformFee       int64  `dynamodbav:"platform_fee"`
	NetAmount         int64  `dynamodbav:"net_amount"`
	Currency          string `dynamodbav:"currency"`
	GatewayOrderRef   string `dynamodbav:"gateway_order_ref,omitempty"`
	GatewayPaymentRef string `dynamodbav:"gateway_payment_ref,omitempty"`
	GatewaySignature  string `dynamodbav:"gateway_signature,omitempty"`
	GatewayStatus     string `dynamodbav:"gateway_status"`
	State             string `dynamodbav:"state"`
	Version           int    `dynamodbav:"version"`
	ReleaseMethod     string `dynamodbav:"release_method,omitempty"`
	ReleasedBy        string `dynamodbav:"released_by,omitempty"`
	ReleasedAt        string `dynamodbav:"released_at,omitempty"`
	RefundReason      string `dynamodbav:"refund_reason,omitempty"`
	RefundedBy        string `dynamodbav:"refunded_by,omitempty"`
	RefundedAt        string `dynamodbav:"refunded_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

type transitionItem struct {
	PaymentID string            `dynamodbav:"payment_id"`
	Seq       int               `dynamodbav:"seq"`
	FromState string            `dynamodbav:"from_state,omitempty"`
	ToState   string            `dynamodbav:"to_state"`
	Event     string            `dynamodbav:"event,omitempty"`
	ActorID   string            `dynamodbav:"actor_id"`
	ActorRole string            `dynamodbav:"actor_role"`
	Timestamp string            `dynamodbav:"timestamp"`
	Metadata  map[string]string `dynamodbav:"metadata,omitempty"`
}

// PaymentDynamoRepository persists the payment projection and its append-only
// transition log in DynamoDB.
//
// Table requirements:
//   - payments: PK id (string); GSIs project_id-index, gateway_order_ref-index,
//     gateway_payment_ref-index, state-index, company_id-index, student_id-index
//   - payment_transitions: PK payment_id (string), SK seq (number)
//
// Writes go through TransactWriteItems so the log entry and the projection row
// commit or fail together.

type PaymentDynamoRepository struct {
	ddb              *dynamodb.Client
	tableName        string
	transitionsTable string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:              ddb,
		tableName:        getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		transitionsTable: getenvDefault("TRANSITIONS_TABLE", defaultTransitionsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
	paymentAV, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	entryAV, err := attributevalue.MarshalMap(toTransitionItem(entry))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                paymentAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.transitionsTable),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return entities.Payment{}, interfaces.ErrTransitionConflict
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

// GetOpenByProjectID returns the project's payment in created or captured
// state, or a zero value when every payment is settled.
func (r *PaymentDynamoRepository) GetOpenByProjectID(ctx context.Context, projectID string) (entities.Payment, error) {
	payments, err := r.queryIndex(ctx, paymentsProjectIDIndex, "project_id", projectID)
	if err != nil {
		return entities.Payment{}, err
	}
	for _, p := range payments {
		if p.State.Open() {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

func (r *PaymentDynamoRepository) GetByGatewayOrderRef(ctx context.Context, orderRef string) (entities.Payment, error) {
	payments, err := r.queryIndex(ctx, paymentsGatewayOrderRefIndex, "gateway_order_ref", orderRef)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(payments) == 0 {
		return entities.Payment{}, nil
	}
	return payments[0], nil
}

func (r *PaymentDynamoRepository) FindByGatewayPaymentRef(ctx context.Context, paymentRef string) (entities.Payment, error) {
	payments, err := r.queryIndex(ctx, paymentsGatewayPaymentRefIndex, "gateway_payment_ref", paymentRef)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(payments) == 0 {
		return entities.Payment{}, nil
	}
	return payments[0], nil
}

func (r *PaymentDynamoRepository) ApplyTransition(ctx context.Context, p entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
	paymentAV, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	entryAV, err := attributevalue.MarshalMap(toTransitionItem(entry))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.transitionsTable),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                paymentAV,
					ConditionExpression: aws.String("#state = :from AND version = :prev"),
					ExpressionAttributeNames: map[string]string{
						"#state": "state",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":from": &types.AttributeValueMemberS{Value: string(entry.FromState)},
						":prev": &types.AttributeValueMemberN{Value: strconv.Itoa(entry.Seq - 1)},
					},
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return entities.Payment{}, interfaces.ErrTransitionConflict
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) ListTransitions(ctx context.Context, paymentID string) ([]entities.StateTransition, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.transitionsTable),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]entities.StateTransition, 0, len(out.Items))
	for _, raw := range out.Items {
		var it transitionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		entries = append(entries, fromTransitionItem(it))
	}
	return entries, nil
}

func (r *PaymentDynamoRepository) ListByState(ctx context.Context, state entities.PaymentState) ([]entities.Payment, error) {
	return r.queryIndex(ctx, paymentsStateIndex, "#state", string(state))
}

func (r *PaymentDynamoRepository) ListByCompanyID(ctx context.Context, companyID string) ([]entities.Payment, error) {
	return r.queryIndex(ctx, paymentsCompanyIDIndex, "company_id", companyID)
}

func (r *PaymentDynamoRepository) ListByStudentID(ctx context.Context, studentID string) ([]entities.Payment, error) {
	return r.queryIndex(ctx, paymentsStudentIDIndex, "student_id", studentID)
}

func (r *PaymentDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.Payment, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(attr + " = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	}
	// "state" is a reserved word and must go through an alias.
	if attr == "#state" {
		input.ExpressionAttributeNames = map[string]string{"#state": "state"}
	}

	payments := make([]entities.Payment, 0)
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			payments = append(payments, fromPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return payments, nil
}

// isConditionalCancellation reports whether a transaction was cancelled by a
// condition check, i.e. a concurrent writer committed first.
func isConditionalCancellation(err error) bool {
	var cancelled *types.TransactionCanceledException
	if errors.As(err, &cancelled) {
		for _, reason := range cancelled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}
	var condFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condFailed)
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		ProjectID:         p.ProjectID,
		CompanyID:         p.CompanyID,
		StudentID:         p.StudentID,
		Amount:            p.Amount,
		PlatformFee:       p.PlatformFee,
		NetAmount:         p.NetAmount,
		Currency:          p.Currency,
		GatewayOrderRef:   p.GatewayOrderRef,
		GatewayPaymentRef: p.GatewayPaymentRef,
		GatewaySignature:  p.GatewaySignature,
		GatewayStatus:     string(p.GatewayStatus),
		State:             string(p.State),
		Version:           p.Version,
		ReleaseMethod:     string(p.ReleaseMethod),
		ReleasedBy:        p.ReleasedBy,
		ReleasedAt:        formatTimePtr(p.ReleasedAt),
		RefundReason:      p.RefundReason,
		RefundedBy:        p.RefundedBy,
		RefundedAt:        formatTimePtr(p.RefundedAt),
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                it.ID,
		ProjectID:         it.ProjectID,
		CompanyID:         it.CompanyID,
		StudentID:         it.StudentID,
		Amount:            it.Amount,
		PlatformFee:       it.PlatformFee,
		NetAmount:         it.NetAmount,
		Currency:          it.Currency,
		GatewayOrderRef:   it.GatewayOrderRef,
		GatewayPaymentRef: it.GatewayPaymentRef,
		GatewaySignature:  it.GatewaySignature,
		GatewayStatus:     entities.GatewayStatus(it.GatewayStatus),
		State:             entities.PaymentState(it.State),
		Version:           it.Version,
		ReleaseMethod:     entities.ReleaseMethod(it.ReleaseMethod),
		ReleasedBy:        it.ReleasedBy,
		ReleasedAt:        parseTimePtr(it.ReleasedAt),
		RefundReason:      it.RefundReason,
		RefundedBy:        it.RefundedBy,
		RefundedAt:        parseTimePtr(it.RefundedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}

func toTransitionItem(e entities.StateTransition) transitionItem {
	return transitionItem{
		PaymentID: e.PaymentID,
		Seq:       e.Seq,
		FromState: string(e.FromState),
		ToState:   string(e.ToState),
		Event:     string(e.Event),
		ActorID:   e.ActorID,
		ActorRole: string(e.ActorRole),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		Metadata:  e.Metadata,
	}
}

func fromTransitionItem(it transitionItem) entities.StateTransition {
	return entities.StateTransition{
		PaymentID: it.PaymentID,
		Seq:       it.Seq,
		FromState: entities.PaymentState(it.FromState),
		ToState:   entities.PaymentState(it.ToState),
		Event:     entities.TransitionEvent(it.Event),
		ActorID:   it.ActorID,
		ActorRole: entities.ActorRole(it.ActorRole),
		Timestamp: parseTime(it.Timestamp),
		Metadata:  it.Metadata,
	}
}

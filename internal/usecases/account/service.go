package account

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
)

// AccountService mantém o conjunto de contas que um workspace sincroniza
type AccountService interface {
	ListSelected(ctx context.Context, workspaceID string, provider domain.Provider) ([]*domain.SelectedAccount, error)
	SelectAccount(ctx context.Context, request *domain.SelectedAccount) (*domain.SelectedAccount, error)
	UnselectAccount(ctx context.Context, workspaceID string, provider domain.Provider, externalID string) error
}

type Service struct {
	selectedAccountRepository repository.SelectedAccountRepository
	connectionRepository      repository.ConnectionRepository
}

func NewService(
	selectedAccountRepository repository.SelectedAccountRepository,
	connectionRepository repository.ConnectionRepository,
) AccountService {
	return &Service{
		selectedAccountRepository: selectedAccountRepository,
		connectionRepository:      connectionRepository,
	}
}

func (s *Service) ListSelected(ctx context.Context, workspaceID string, provider domain.Provider) ([]*domain.SelectedAccount, error) {
	accounts, err := s.selectedAccountRepository.ListSelected(ctx, workspaceID, provider)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"workspace_id": workspaceID,
			"provider":     provider,
		}).Error("Erro ao listar contas selecionadas")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar contas selecionadas")
	}

	return accounts, nil
}

// SelectAccount exige conexão ativa: uma conta sem conexão nunca seria sincronizada
func (s *Service) SelectAccount(ctx context.Context, request *domain.SelectedAccount) (*domain.SelectedAccount, error) {
	externalID, err := domain.NormalizeAccountID(request.Provider, request.ExternalID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrInvalidAccountID, apiErrors.ErrInvalidFormat, request.ExternalID, err.Error())
	}

	conn, err := s.connectionRepository.GetActive(ctx, request.WorkspaceID, request.Provider)
	if err != nil {
		logrus.WithError(err).WithField("workspace_id", request.WorkspaceID).Error("Erro ao buscar conexão ativa")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a conexão do provedor")
	}
	if conn == nil {
		return nil, NewAccountErrorWithID(ErrConnectionRequired, apiErrors.ErrConnectionNotFound, externalID, request.Provider.String())
	}

	account := &domain.SelectedAccount{
		WorkspaceID: request.WorkspaceID,
		Provider:    request.Provider,
		ExternalID:  externalID,
		Name:        request.Name,
		Currency:    request.Currency,
		Timezone:    request.Timezone,
	}

	if err := s.selectedAccountRepository.Select(ctx, account); err != nil {
		logrus.WithError(err).WithField("account_id", externalID).Error("Erro ao selecionar conta")
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, externalID, "Falha ao salvar conta selecionada")
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": account.WorkspaceID,
		"provider":     account.Provider,
		"account_id":   externalID,
	}).Info("Conta selecionada para sincronização")

	return account, nil
}

// UnselectAccount remove a conta das próximas execuções; métricas já gravadas são mantidas
func (s *Service) UnselectAccount(ctx context.Context, workspaceID string, provider domain.Provider, externalID string) error {
	normalized, err := domain.NormalizeAccountID(provider, externalID)
	if err != nil {
		return NewAccountErrorWithID(ErrInvalidAccountID, apiErrors.ErrInvalidFormat, externalID, err.Error())
	}

	if err := s.selectedAccountRepository.Unselect(ctx, workspaceID, provider, normalized); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrNotFound, normalized, "")
		}
		logrus.WithError(err).WithField("account_id", normalized).Error("Erro ao remover conta selecionada")
		return NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, normalized, "Falha ao remover conta selecionada")
	}

	return nil
}
